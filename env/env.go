// Package env exposes the alfred_* variables Alfred injects into the script
// environment of a running workflow.
//
// See https://www.alfredapp.com/help/workflows/script-environment-variables/
// for the full list. Accessors only report presence or absence; no further
// validation is applied. A variable set to the empty string is treated as
// absent.
package env

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Viper keys for the script environment variables.
const (
	keyPreferences              = "preferences"
	keyPreferencesLocalHash     = "preferences_localhash"
	keyTheme                    = "theme"
	keyThemeBackground          = "theme_background"
	keyThemeSelectionBackground = "theme_selection_background"
	keyThemeSubtext             = "theme_subtext"
	keyVersion                  = "version"
	keyVersionBuild             = "version_build"
	keyWorkflowBundleID         = "workflow_bundleid"
	keyWorkflowCache            = "workflow_cache"
	keyWorkflowData             = "workflow_data"
	keyWorkflowName             = "workflow_name"
	keyWorkflowUID              = "workflow_uid"
	keyWorkflowVersion          = "workflow_version"
	keyDebug                    = "debug"
)

var v = newViper()

// newViper binds each alfred_* environment variable to its viper key. Values
// are read from the environment on every access, so changes made with
// t.Setenv in tests are observed.
func newViper() *viper.Viper {
	bindings := map[string]string{
		keyPreferences:              "alfred_preferences",
		keyPreferencesLocalHash:     "alfred_preferences_localhash",
		keyTheme:                    "alfred_theme",
		keyThemeBackground:          "alfred_theme_background",
		keyThemeSelectionBackground: "alfred_theme_selection_background",
		keyThemeSubtext:             "alfred_theme_subtext",
		keyVersion:                  "alfred_version",
		keyVersionBuild:             "alfred_version_build",
		keyWorkflowBundleID:         "alfred_workflow_bundleid",
		keyWorkflowCache:            "alfred_workflow_cache",
		keyWorkflowData:             "alfred_workflow_data",
		keyWorkflowName:             "alfred_workflow_name",
		keyWorkflowUID:              "alfred_workflow_uid",
		keyWorkflowVersion:          "alfred_workflow_version",
		keyDebug:                    "alfred_debug",
	}

	vp := viper.New()
	for key, envVar := range bindings {
		// BindEnv only fails on an empty key.
		_ = vp.BindEnv(key, envVar)
	}

	return vp
}

func lookup(key string) (string, bool) {
	s := v.GetString(key)

	return s, s != ""
}

// Preferences returns the location of the Alfred.alfredpreferences bundle.
//
// Example: "/Users/Crayons/Dropbox/Alfred/Alfred.alfredpreferences"
func Preferences() (string, bool) {
	return lookup(keyPreferences)
}

// LocalPreferences returns the location of the machine-specific preferences,
// derived from Preferences and the local hash variable.
func LocalPreferences() (string, bool) {
	prefs, ok := Preferences()
	if !ok {
		return "", false
	}
	hash, ok := lookup(keyPreferencesLocalHash)
	if !ok {
		return "", false
	}

	return filepath.Join(prefs, "preferences", "local", hash), true
}

// Theme returns the current Alfred theme identifier.
//
// Example: "alfred.theme.yosemite"
func Theme() (string, bool) {
	return lookup(keyTheme)
}

// ThemeBackground returns the theme background color string.
//
// Example: "rgba(255,255,255,0.98)"
func ThemeBackground() (string, bool) {
	return lookup(keyThemeBackground)
}

// ThemeSelectionBackground returns the selected item background color string.
func ThemeSelectionBackground() (string, bool) {
	return lookup(keyThemeSelectionBackground)
}

// Subtext is the subtext display mode from Alfred's Appearance preferences.
type Subtext int

const (
	// SubtextAlways shows subtext for every result.
	SubtextAlways Subtext = iota
	// SubtextAlternativeActions shows subtext for alternative actions only.
	SubtextAlternativeActions
	// SubtextSelectedResult shows subtext for the selected result only.
	SubtextSelectedResult
	// SubtextNever hides subtext.
	SubtextNever
)

// ThemeSubtext returns the subtext mode selected in the Appearance
// preferences.
func ThemeSubtext() (Subtext, bool) {
	switch v.GetString(keyThemeSubtext) {
	case "0":
		return SubtextAlways, true
	case "1":
		return SubtextAlternativeActions, true
	case "2":
		return SubtextSelectedResult, true
	case "3":
		return SubtextNever, true
	default:
		return 0, false
	}
}

// Version returns the Alfred version string.
//
// Example: "3.2.1"
func Version() (string, bool) {
	return lookup(keyVersion)
}

// VersionBuild returns the Alfred build number.
func VersionBuild() (int, bool) {
	s, ok := lookup(keyVersionBuild)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// WorkflowBundleID returns the bundle ID of the running workflow.
//
// Example: "com.alfredapp.david.googlesuggest"
func WorkflowBundleID() (string, bool) {
	return lookup(keyWorkflowBundleID)
}

// WorkflowCache returns the recommended directory for volatile workflow
// data. Only populated when the workflow has a bundle identifier set.
func WorkflowCache() (string, bool) {
	return lookup(keyWorkflowCache)
}

// WorkflowData returns the recommended directory for non-volatile workflow
// data. Only populated when the workflow has a bundle identifier set.
func WorkflowData() (string, bool) {
	return lookup(keyWorkflowData)
}

// WorkflowName returns the name of the running workflow.
func WorkflowName() (string, bool) {
	return lookup(keyWorkflowName)
}

// WorkflowUID returns the unique ID of the running workflow.
//
// Example: "user.workflow.B0AC54EC-601C-479A-9428-01F9FD732959"
func WorkflowUID() (string, bool) {
	return lookup(keyWorkflowUID)
}

// WorkflowVersion returns the version of the running workflow.
func WorkflowVersion() (string, bool) {
	return lookup(keyWorkflowVersion)
}

// Debug reports whether the Alfred debug panel is open for the workflow.
func Debug() bool {
	return v.GetString(keyDebug) == "1"
}

// Package alfred provides helpers for building Alfred script filter feedback.
//
// A script filter emits a list of result items for Alfred to display. Items
// are assembled with ItemBuilder and serialized with the jsonout package
// (Alfred 3 and later) or the xmlout package (legacy Alfred 2 format):
//
//	item, err := alfred.NewItemBuilder("Open Project").
//		Subtitle("Opens the project in your editor").
//		Arg("/path/to/project").
//		IconFileType("public.folder").
//		Build()
//	if err != nil {
//		// handle invalid item
//	}
//
//	err = jsonout.WriteItems(os.Stdout, []alfred.Item{item})
//
// The env package exposes the alfred_* variables Alfred injects into the
// script environment, and the update package lets a workflow check a remote
// host for newer releases of itself.
package alfred

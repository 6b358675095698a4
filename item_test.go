package alfred

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NewItem(t *testing.T) {
	t.Parallel()

	got := NewItem("Open Project")

	assert.Equal(t, "Open Project", got.Title)
	assert.True(t, got.Valid)
	assert.Empty(t, got.Subtitle)
	assert.Nil(t, got.Icon)
	assert.Equal(t, TypeDefault, got.Type)
}

func Test_Item_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		give       Item
		requireArg bool
		wantErr    string
	}{
		{
			name: "valid item",
			give: NewItem("title"),
		},
		{
			name:    "empty title",
			give:    Item{Valid: true},
			wantErr: "title must not be empty",
		},
		{
			name:    "whitespace title",
			give:    Item{Title: "   ", Valid: true},
			wantErr: "title must not be empty",
		},
		{
			name:       "arg mandated but empty",
			give:       NewItem("title"),
			requireArg: true,
			wantErr:    "arg must not be empty",
		},
		{
			name: "arg mandated and set",
			give: Item{Title: "title", Arg: "value", Valid: true},

			requireArg: true,
		},
		{
			name: "unknown modifier",
			give: Item{
				Title: "title",
				Mods:  map[Modifier]ModData{Modifier("hyper"): {}},
			},
			wantErr: `unknown modifier "hyper"`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.give.Validate(tt.requireArg)

			if tt.wantErr != "" {
				require.Error(t, err)
				require.ErrorIs(t, err, ErrInvalidItem)
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func Test_Modifiers(t *testing.T) {
	t.Parallel()

	want := []Modifier{ModCmd, ModAlt, ModCtrl, ModShift, ModFn}
	assert.Equal(t, want, Modifiers())
}

func Test_ModData_IsZero(t *testing.T) {
	t.Parallel()

	subtitle := "alt subtitle"

	assert.True(t, ModData{}.IsZero())
	assert.False(t, ModData{Subtitle: &subtitle}.IsZero())
}

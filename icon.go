package alfred

// IconSource describes how the value of an Icon is interpreted.
type IconSource string

const (
	// IconSourceImage interprets the value as the path to an image file,
	// relative to the workflow directory.
	IconSourceImage IconSource = ""
	// IconSourceFileIcon uses the icon of the file at the given path.
	IconSourceFileIcon IconSource = "fileicon"
	// IconSourceFileType uses the icon for a file type UTI, such as
	// "public.folder".
	IconSourceFileType IconSource = "filetype"
)

// Icon represents a result icon.
type Icon struct {
	// Value is a path or a UTI, depending on Source.
	Value string
	// Source selects how Value is interpreted.
	Source IconSource
}

// ImageIcon returns an Icon for an image file on disk.
//
// The path is interpreted relative to the workflow directory.
func ImageIcon(path string) Icon {
	return Icon{Value: path, Source: IconSourceImage}
}

// FileIcon returns an Icon showing the icon of the file at path.
func FileIcon(path string) Icon {
	return Icon{Value: path, Source: IconSourceFileIcon}
}

// FileTypeIcon returns an Icon for a file type UTI, such as "public.jpeg".
func FileTypeIcon(uti string) Icon {
	return Icon{Value: uti, Source: IconSourceFileType}
}

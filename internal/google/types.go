package google

// FileType identifies the Google Workspace file kinds this backend creates
// and searches for.
type FileType string

const (
	TypeDocument    FileType = "document"
	TypeSpreadsheet FileType = "spreadsheet"
	TypeFolder      FileType = "folder"
)

// MimeType returns the full Drive mime type for the file kind.
func (t FileType) MimeType() string {
	return "application/vnd.google-apps." + string(t)
}

// File mirrors the Drive API file resource fields this backend reads.
type File struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	MimeType string `json:"mimeType"`
	Name     string `json:"name"`
}

// FileList mirrors the Drive API files.list response.
type FileList struct {
	Files            []File `json:"files"`
	IncompleteSearch bool   `json:"incompleteSearch"`
	Kind             string `json:"kind"`
}

// Find returns the first entry matching both name and type, or nil.
func (l FileList) Find(name string, filetype FileType) *File {
	mime := filetype.MimeType()
	for i := range l.Files {
		if l.Files[i].Name == name && l.Files[i].MimeType == mime {
			return &l.Files[i]
		}
	}

	return nil
}

// FilterType returns the entries whose mime type matches the file kind.
func (l FileList) FilterType(filetype FileType) []File {
	mime := filetype.MimeType()

	var out []File
	for _, f := range l.Files {
		if f.MimeType == mime {
			out = append(out, f)
		}
	}

	return out
}

package model

const FileTypeMarkdown = "text/markdown"

type File struct {
	ID        string  `db:"id" json:"id"`
	AuthorID  string  `db:"author_id" json:"authorId"`
	Filename  string  `db:"filename" json:"filename"`
	Path      string  `db:"path" json:"path"`
	Section   string  `db:"section" json:"section"` // denormalized section name
	SectionID string  `db:"section_id" json:"sectionId"`
	Text      string  `db:"text" json:"text"`
	Metadata  *string `db:"metadata" json:"metadata"`
	Raw       *string `db:"raw" json:"raw"`
	Default   *string `db:"default" json:"default"`
	Type      string  `db:"type" json:"type"`
	Public    bool    `db:"public" json:"public"`
}

// FileListing is the restricted projection returned when listing a section's
// files. Content fields (text, metadata, raw) are excluded.
type FileListing struct {
	ID       string  `db:"id" json:"id"`
	AuthorID string  `db:"author_id" json:"authorId"`
	Filename string  `db:"filename" json:"filename"`
	Section  string  `db:"section" json:"section"`
	Path     string  `db:"path" json:"path"`
	Type     string  `db:"type" json:"type"`
	Default  *string `db:"default" json:"default"`
}

type FilePatch struct {
	Filename *string `json:"filename"`
	Path     *string `json:"path"`
	Section  *string `json:"section"`
	Text     *string `json:"text"`
	Metadata *string `json:"metadata"`
	Raw      *string `json:"raw"`
	Default  *string `json:"default"`
	Type     *string `json:"type"`
	Public   *bool   `json:"public"`
}

func (f *File) IsMarkdown() bool {
	return f.Type == FileTypeMarkdown
}

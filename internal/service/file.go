package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/monohq/mono/internal/markdown"
	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
)

var ErrNotMarkdown = errors.New("file is not markdown")

// FileInput carries the client-supplied fields for creating a file.
type FileInput struct {
	Filename string  `json:"filename"`
	Path     string  `json:"path"`
	Section  string  `json:"section"`
	Text     string  `json:"text"`
	Metadata *string `json:"metadata"`
	Raw      *string `json:"raw"`
	Default  *string `json:"default"`
	Type     string  `json:"type"`
	Public   *bool   `json:"public"`
}

func (in *FileInput) Validate() error {
	switch {
	case in.Filename == "":
		return fmt.Errorf("%w: filename is required", ErrValidation)
	case in.Path == "":
		return fmt.Errorf("%w: path is required", ErrValidation)
	case in.Section == "":
		return fmt.Errorf("%w: section is required", ErrValidation)
	case in.Text == "":
		return fmt.Errorf("%w: text is required", ErrValidation)
	case in.Type == "":
		return fmt.Errorf("%w: type is required", ErrValidation)
	}
	return nil
}

// toModel binds the input to an owner and section. The public flag defaults
// to false when absent.
func (in *FileInput) toModel(authorID, sectionID string) *model.File {
	public := false
	if in.Public != nil {
		public = *in.Public
	}

	return &model.File{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Filename:  in.Filename,
		Path:      in.Path,
		Section:   in.Section,
		SectionID: sectionID,
		Text:      in.Text,
		Metadata:  in.Metadata,
		Raw:       in.Raw,
		Default:   in.Default,
		Type:      in.Type,
		Public:    public,
	}
}

type FileService struct {
	fileRepository    repository.FileRepository
	sectionRepository repository.SectionRepository
	renderer          *markdown.Renderer
}

func NewFileService(
	fileRepository repository.FileRepository,
	sectionRepository repository.SectionRepository,
	renderer *markdown.Renderer,
) *FileService {
	return &FileService{
		fileRepository:    fileRepository,
		sectionRepository: sectionRepository,
		renderer:          renderer,
	}
}

// List returns public files blended with the caller's own ones.
func (s *FileService) List(caller *model.User) ([]*model.File, error) {
	return s.fileRepository.Visible(callerID(caller))
}

func (s *FileService) Get(id string, caller *model.User) (*model.File, error) {
	return s.fileRepository.VisibleByID(id, callerID(caller))
}

// Create inserts a new file owned by authorID, resolving its section lazily.
// On a path conflict it returns the existing row together with
// repository.ErrFileExists so the handler can include it in the 409 body.
func (s *FileService) Create(authorID string, in *FileInput) (*model.File, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	section, err := s.sectionRepository.GetOrCreate(in.Section, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve section: %w", err)
	}

	// Fast path; the unique index on (path, author_id) is authoritative.
	existing, err := s.fileRepository.ByPathAndAuthor(in.Path, authorID)
	if err == nil {
		return existing, repository.ErrFileExists
	}
	if !errors.Is(err, repository.ErrFileNotFound) {
		return nil, err
	}

	file := in.toModel(authorID, section.ID)
	err = s.fileRepository.Create(file)
	if errors.Is(err, repository.ErrFileExists) {
		// Lost a create race; surface the row that won.
		existing, lookupErr := s.fileRepository.ByPathAndAuthor(in.Path, authorID)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return existing, repository.ErrFileExists
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

func (s *FileService) Update(id, authorID string, patch *model.FilePatch) (*model.File, error) {
	return s.fileRepository.Update(id, authorID, patch)
}

// Unshare makes a file private. Idempotent: unsharing an already-private
// file succeeds and reports changed=false.
func (s *FileService) Unshare(id, authorID string) (file *model.File, changed bool, err error) {
	file, err = s.fileRepository.OwnedByID(id, authorID)
	if err != nil {
		return nil, false, err
	}

	if !file.Public {
		return file, false, nil
	}

	file, err = s.fileRepository.SetPublic(file.ID, false)
	if err != nil {
		return nil, false, err
	}

	return file, true, nil
}

func (s *FileService) Delete(id, authorID string) (*model.File, error) {
	return s.fileRepository.Delete(id, authorID)
}

// RenderedFile is the HTML form of a markdown file together with its decoded
// frontmatter block.
type RenderedFile struct {
	HTML string         `json:"html"`
	Meta map[string]any `json:"meta"`
}

// Render converts a visible markdown file's text to HTML. Frontmatter in the
// text is stripped from the HTML and returned as metadata.
func (s *FileService) Render(id string, caller *model.User) (*RenderedFile, error) {
	file, err := s.fileRepository.VisibleByID(id, callerID(caller))
	if err != nil {
		return nil, err
	}

	if !file.IsMarkdown() {
		return nil, ErrNotMarkdown
	}

	html, meta, err := s.renderer.Render([]byte(file.Text))
	if err != nil {
		return nil, err
	}

	return &RenderedFile{
		HTML: string(html),
		Meta: meta,
	}, nil
}

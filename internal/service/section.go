package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
)

type SectionService struct {
	sectionRepository repository.SectionRepository
	fileRepository    repository.FileRepository
}

func NewSectionService(sectionRepository repository.SectionRepository, fileRepository repository.FileRepository) *SectionService {
	return &SectionService{
		sectionRepository: sectionRepository,
		fileRepository:    fileRepository,
	}
}

// List returns public sections blended with the caller's own ones.
// caller may be nil for anonymous requests.
func (s *SectionService) List(caller *model.User) ([]*model.Section, error) {
	return s.sectionRepository.Visible(callerID(caller))
}

func (s *SectionService) ListOwn(authorID string) ([]*model.Section, error) {
	return s.sectionRepository.ByAuthor(authorID)
}

// Files returns the restricted file listing of a section the caller may see.
func (s *SectionService) Files(sectionID string, caller *model.User) ([]*model.FileListing, error) {
	section, err := s.sectionRepository.VisibleByID(sectionID, callerID(caller))
	if err != nil {
		return nil, err
	}

	return s.fileRepository.ListingBySection(section.ID)
}

func (s *SectionService) Create(authorID, name string, public bool) (*model.Section, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	section := &model.Section{
		ID:       uuid.New().String(),
		Name:     name,
		AuthorID: authorID,
		Public:   public,
	}

	err := s.sectionRepository.Create(section)
	if err != nil {
		return nil, err
	}

	return section, nil
}

func (s *SectionService) Update(authorID, name string, patch *model.SectionPatch) (*model.Section, error) {
	return s.sectionRepository.UpdateByName(name, authorID, patch)
}

func (s *SectionService) Delete(authorID, name string) (*model.Section, error) {
	return s.sectionRepository.DeleteByName(name, authorID)
}

func callerID(caller *model.User) *string {
	if caller == nil {
		return nil
	}
	return &caller.ID
}

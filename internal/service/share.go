package service

import (
	"errors"
	"fmt"

	"github.com/monohq/mono/internal/model"
	"github.com/monohq/mono/internal/repository"
)

// ShareResult is the payload of a bulk share: the section the files ended up
// in plus the union of flipped and freshly created files.
type ShareResult struct {
	SectionID string        `json:"id"`
	Files     []*model.File `json:"files"`
}

type ShareService struct {
	fileRepository    repository.FileRepository
	sectionRepository repository.SectionRepository
}

func NewShareService(fileRepository repository.FileRepository, sectionRepository repository.SectionRepository) *ShareService {
	return &ShareService{
		fileRepository:    fileRepository,
		sectionRepository: sectionRepository,
	}
}

// Single shares one file. An existing public file is a no-op; an existing
// private file is flipped to public; an absent path is inserted with the
// supplied fields as-is. The insert does not force public to true: clients
// rely on the supplied public flag being honored when the path is new.
func (s *ShareService) Single(authorID string, in *FileInput) (file *model.File, alreadyShared bool, err error) {
	if err := in.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.fileRepository.ByPathAndAuthor(in.Path, authorID)
	if err == nil {
		if existing.Public {
			return existing, true, nil
		}
		file, err = s.fileRepository.SetPublic(existing.ID, true)
		return file, false, err
	}
	if !errors.Is(err, repository.ErrFileNotFound) {
		return nil, false, err
	}

	section, err := s.sectionRepository.GetOrCreate(in.Section, authorID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve section: %w", err)
	}

	file = in.toModel(authorID, section.ID)
	err = s.fileRepository.Create(file)
	if err != nil {
		return nil, false, err
	}

	return file, false, nil
}

// Multiple shares a batch. Paths the caller already owns are flipped to
// public in bulk; the remaining inputs are inserted fresh, bound to the
// first item's section (created lazily). When every input already existed
// the section lookup is skipped entirely.
func (s *ShareService) Multiple(authorID string, inputs []*FileInput) (*ShareResult, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", ErrValidation)
	}

	paths := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		paths = append(paths, in.Path)
	}

	existing, err := s.publishExisting(paths, authorID)
	if err != nil {
		return nil, err
	}

	if len(existing) == len(inputs) {
		return &ShareResult{SectionID: existing[0].SectionID, Files: existing}, nil
	}

	section, err := s.sectionRepository.GetOrCreate(inputs[0].Section, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve section: %w", err)
	}

	owned := make(map[string]bool, len(existing))
	for _, file := range existing {
		owned[file.Path] = true
	}

	files := existing
	for _, in := range inputs {
		if owned[in.Path] {
			continue
		}
		file := in.toModel(authorID, section.ID)
		err = s.fileRepository.Create(file)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return &ShareResult{SectionID: section.ID, Files: files}, nil
}

// publishExisting flips the caller's files at the given paths to public and
// returns them re-read.
func (s *ShareService) publishExisting(paths []string, authorID string) ([]*model.File, error) {
	existing, err := s.fileRepository.ByPathsAndAuthor(paths, authorID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(existing))
	for _, file := range existing {
		ids = append(ids, file.ID)
	}

	err = s.fileRepository.PublishByIDs(ids)
	if err != nil {
		return nil, err
	}

	return s.fileRepository.ByPathsAndAuthor(paths, authorID)
}

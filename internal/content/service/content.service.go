package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shivraj416/egram/internal/content/model"
	"github.com/shivraj416/egram/pkg/logger"
	"github.com/shivraj416/egram/socket"
	"github.com/shivraj416/egram/store"
)

const (
	defaultCategory = "General"
	defaultImageAlt = "Uploaded Image"
	dateLayout      = "2006-01-02"
)

// ValidationError is a client-caused failure: a missing required field or an
// impossible value. Nothing is loaded or saved when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// Service applies every mutation to the shared document: validate, assign an
// id, apply defaults, append or filter, persist, then notify viewers. One
// mutex serializes all load-mutate-save sequences so concurrent admin
// requests cannot lose each other's writes.
type Service struct {
	store    store.Store
	hub      *socket.Hub
	validate *validator.Validate
	mu       sync.Mutex
}

func New(st store.Store, hub *socket.Hub) *Service {
	return &Service{
		store:    st,
		hub:      hub,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// --- reads ---

func (s *Service) Info() ([]store.Notice, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Info, nil
}

func (s *Service) Members() ([]store.Member, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Members, nil
}

// Schemes returns every scheme, or only the ones still running when
// activeOnly is set. Expiry is decided here so every client agrees on it.
func (s *Service) Schemes(activeOnly bool) ([]store.Scheme, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return doc.Schemes, nil
	}

	// Compare whole calendar days: a scheme ending today is still active.
	today, _ := time.Parse(dateLayout, time.Now().Format(dateLayout))
	active := []store.Scheme{}
	for _, sch := range doc.Schemes {
		end, err := time.Parse(dateLayout, sch.End)
		if err != nil {
			// Legacy records with free-form dates stay visible.
			active = append(active, sch)
			continue
		}
		if !end.Before(today) {
			active = append(active, sch)
		}
	}
	return active, nil
}

func (s *Service) Gallery() ([]store.GalleryImage, error) {
	doc, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return doc.Images, nil
}

// --- creates ---

func (s *Service) CreateNotice(req model.CreateNoticeRequest) (*store.Notice, error) {
	if err := s.checkRequired(req); err != nil {
		return nil, err
	}

	notice := store.Notice{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedAt:   time.Now().UTC(),
	}
	if notice.Category == "" {
		notice.Category = defaultCategory
	}

	err := s.commit(func(doc *store.Document) {
		doc.Info = append(doc.Info, notice)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(socket.NewData(socket.KindInfo, notice))
	return &notice, nil
}

func (s *Service) CreateMember(req model.CreateMemberRequest) (*store.Member, error) {
	if err := s.checkRequired(req); err != nil {
		return nil, err
	}

	member := store.Member{
		ID:      newID(),
		Name:    req.Name,
		Role:    req.Role,
		Contact: req.Contact,
	}

	err := s.commit(func(doc *store.Document) {
		doc.Members = append(doc.Members, member)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(socket.NewData(socket.KindMembers, member))
	return &member, nil
}

func (s *Service) CreateScheme(req model.CreateSchemeRequest) (*store.Scheme, error) {
	if err := s.checkRequired(req); err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, req.Start)
	if err != nil {
		return nil, &ValidationError{Field: "start", Reason: "must be a YYYY-MM-DD date"}
	}
	end, err := time.Parse(dateLayout, req.End)
	if err != nil {
		return nil, &ValidationError{Field: "end", Reason: "must be a YYYY-MM-DD date"}
	}
	if end.Before(start) {
		return nil, &ValidationError{Field: "end", Reason: "must not be before start"}
	}

	scheme := store.Scheme{
		ID:          newID(),
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
	}

	if err := s.commit(func(doc *store.Document) {
		doc.Schemes = append(doc.Schemes, scheme)
	}); err != nil {
		return nil, err
	}
	s.hub.Publish(socket.NewData(socket.KindSchemes, scheme))
	return &scheme, nil
}

// AddImage stores uploaded bytes inline as a data URI so the record resolves
// with no external blob dependency.
func (s *Service) AddImage(data []byte, mimeType string) (*store.GalleryImage, error) {
	if len(data) == 0 {
		return nil, &ValidationError{Field: "image", Reason: "is required"}
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	image := store.GalleryImage{
		ID:         newID(),
		URL:        fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)),
		Alt:        defaultImageAlt,
		UploadedAt: time.Now().UTC(),
	}

	err := s.commit(func(doc *store.Document) {
		doc.Images = append(doc.Images, image)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(socket.NewData(socket.KindGallery, image))
	return &image, nil
}

func (s *Service) SubmitMessage(req model.ContactRequest) (*store.ContactMessage, error) {
	if err := s.checkRequired(req); err != nil {
		return nil, err
	}

	msg := store.ContactMessage{
		ID:         newID(),
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		ReceivedAt: time.Now().UTC(),
	}

	err := s.commit(func(doc *store.Document) {
		doc.Messages = append(doc.Messages, msg)
	})
	if err != nil {
		return nil, err
	}
	s.hub.Publish(socket.NewData(socket.KindContact, nil))
	return &msg, nil
}

// --- deletes ---
// Removing an id that does not exist is a successful no-op, so repeating a
// delete can never fail.

func (s *Service) DeleteNotice(id string) error {
	err := s.commit(func(doc *store.Document) {
		kept := doc.Info[:0]
		for _, n := range doc.Info {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		doc.Info = kept
	})
	if err != nil {
		return err
	}
	s.hub.Publish(socket.NewData(socket.KindInfo, nil))
	return nil
}

func (s *Service) DeleteMember(id string) error {
	err := s.commit(func(doc *store.Document) {
		kept := doc.Members[:0]
		for _, m := range doc.Members {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		doc.Members = kept
	})
	if err != nil {
		return err
	}
	s.hub.Publish(socket.NewData(socket.KindMembers, nil))
	return nil
}

func (s *Service) DeleteScheme(id string) error {
	err := s.commit(func(doc *store.Document) {
		kept := doc.Schemes[:0]
		for _, sch := range doc.Schemes {
			if sch.ID != id {
				kept = append(kept, sch)
			}
		}
		doc.Schemes = kept
	})
	if err != nil {
		return err
	}
	s.hub.Publish(socket.NewData(socket.KindSchemes, nil))
	return nil
}

func (s *Service) DeleteImage(id string) error {
	err := s.commit(func(doc *store.Document) {
		kept := doc.Images[:0]
		for _, img := range doc.Images {
			if img.ID != id {
				kept = append(kept, img)
			}
		}
		doc.Images = kept
	})
	if err != nil {
		return err
	}
	s.hub.Publish(socket.NewData(socket.KindGallery, nil))
	return nil
}

// --- internals ---

// commit runs one load-mutate-save sequence under the service mutex.
func (s *Service) commit(mutate func(doc *store.Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load()
	if err != nil {
		logger.Sugar.Errorf("Failed to load document: %v", err)
		return err
	}
	mutate(doc)
	if err := s.store.Save(doc); err != nil {
		logger.Sugar.Errorf("Failed to save document: %v", err)
		return err
	}
	return nil
}

func (s *Service) checkRequired(req interface{}) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: strings.ToLower(verrs[0].Field()), Reason: "is required"}
	}
	return &ValidationError{Reason: err.Error()}
}

func newID() string {
	return uuid.NewString()
}

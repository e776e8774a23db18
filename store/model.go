package store

import "time"

// Collection names. They double as the event kinds pushed to viewers.
const (
	CollectionInfo     = "info"
	CollectionMembers  = "members"
	CollectionSchemes  = "schemes"
	CollectionGallery  = "gallery"
	CollectionMessages = "contact"
)

// Notice is a public announcement ("info" in the persisted document).
type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Member is a panchayat member listed on the public site.
type Member struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact"`
}

// Scheme is a government scheme with an active date range.
// Start and End are calendar dates in YYYY-MM-DD form.
type Scheme struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// GalleryImage holds an uploaded image inline as a data URI, so the record
// resolves without any external blob.
type GalleryImage struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Alt        string    `json:"alt"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ContactMessage is a public contact-form submission. Write-only through the
// API; admins read the persisted document directly.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Document is the single root structure holding every collection. It is
// loaded fresh on every operation and overwritten wholesale on every write.
type Document struct {
	Info     []Notice         `json:"info"`
	Members  []Member         `json:"members"`
	Schemes  []Scheme         `json:"schemes"`
	Images   []GalleryImage   `json:"images"`
	Messages []ContactMessage `json:"messages"`
}

// NewDocument returns a document with five empty collections, the state used
// when nothing has been persisted yet.
func NewDocument() *Document {
	return &Document{
		Info:     []Notice{},
		Members:  []Member{},
		Schemes:  []Scheme{},
		Images:   []GalleryImage{},
		Messages: []ContactMessage{},
	}
}

// normalize replaces nil collections with empty ones so a loaded document is
// always fully formed, even when the persisted JSON predates a collection.
func (d *Document) normalize() {
	if d.Info == nil {
		d.Info = []Notice{}
	}
	if d.Members == nil {
		d.Members = []Member{}
	}
	if d.Schemes == nil {
		d.Schemes = []Scheme{}
	}
	if d.Images == nil {
		d.Images = []GalleryImage{}
	}
	if d.Messages == nil {
		d.Messages = []ContactMessage{}
	}
}

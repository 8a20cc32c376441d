package domain

import (
	"encoding/json"
	"time"
)

// ContentType is the type tag of a content item
type ContentType string

const (
	ContentTypeImage ContentType = "Image"
	ContentTypeVideo ContentType = "Video"
	ContentTypeText  ContentType = "Text"
)

// ContentTypes lists the accepted type tags in display order
var ContentTypes = []ContentType{ContentTypeImage, ContentTypeVideo, ContentTypeText}

// IsValid reports whether t is a known content type
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeImage, ContentTypeVideo, ContentTypeText:
		return true
	}
	return false
}

// ParseContentType converts a raw type tag, rejecting unknown values
func ParseContentType(s string) (ContentType, error) {
	t := ContentType(s)
	if !t.IsValid() {
		return "", ErrInvalidContentType
	}
	return t, nil
}

// Payload is the type-specific body of a content item.
// It is implemented only by ImagePayload, VideoPayload and TextPayload.
type Payload interface {
	Type() ContentType
	isPayload()
}

// ImagePayload carries the image location of an Image item
type ImagePayload struct {
	ImageURL string
}

// VideoPayload carries the video location of a Video item
type VideoPayload struct {
	URL string
}

// TextPayload carries the body of a Text item
type TextPayload struct {
	Text string
}

func (ImagePayload) Type() ContentType { return ContentTypeImage }
func (VideoPayload) Type() ContentType { return ContentTypeVideo }
func (TextPayload) Type() ContentType  { return ContentTypeText }

func (ImagePayload) isPayload() {}
func (VideoPayload) isPayload() {}
func (TextPayload) isPayload()  {}

// NewPayload builds the payload for t from the flat url/text/imageUrl fields.
// Only the field matching t is consulted; the other two are dropped.
func NewPayload(t ContentType, url, text, imageURL string) (Payload, error) {
	switch t {
	case ContentTypeImage:
		if imageURL == "" {
			return nil, &MissingPayloadError{Type: t}
		}
		return ImagePayload{ImageURL: imageURL}, nil
	case ContentTypeVideo:
		if url == "" {
			return nil, &MissingPayloadError{Type: t}
		}
		return VideoPayload{URL: url}, nil
	case ContentTypeText:
		if text == "" {
			return nil, &MissingPayloadError{Type: t}
		}
		return TextPayload{Text: text}, nil
	}
	return nil, ErrInvalidContentType
}

// PayloadFields flattens p into the stored url/text/imageUrl triplet.
// Exactly one of the returned pointers is non-nil for a valid payload.
func PayloadFields(p Payload) (url, text, imageURL *string) {
	switch v := p.(type) {
	case ImagePayload:
		return nil, nil, &v.ImageURL
	case VideoPayload:
		return &v.URL, nil, nil
	case TextPayload:
		return nil, &v.Text, nil
	}
	return nil, nil, nil
}

// PayloadFromFields rebuilds a payload from its stored representation
func PayloadFromFields(t ContentType, url, text, imageURL *string) (Payload, error) {
	return NewPayload(t, deref(url), deref(text), deref(imageURL))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Content represents a published content item
type Content struct {
	ID         string
	Title      string
	Payload    Payload
	CategoryID string
	CreatorID  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Type returns the type tag of the content's payload
func (c *Content) Type() ContentType {
	if c.Payload == nil {
		return ""
	}
	return c.Payload.Type()
}

// CategoryRef is the resolved category of a listed content item
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// UserRef is the resolved creator of a listed content item
type UserRef struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ContentView is a content item with its category and creator resolved.
// A nil reference means the referenced record no longer exists.
type ContentView struct {
	Content
	Category *CategoryRef
	Creator  *UserRef
}

type contentJSON struct {
	ID        string      `json:"_id"`
	Title     string      `json:"title"`
	Type      ContentType `json:"type"`
	URL       *string     `json:"url"`
	Text      *string     `json:"text"`
	ImageURL  *string     `json:"imageUrl"`
	Category  any         `json:"category"`
	Creator   any         `json:"creator"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (c *Content) toJSON() contentJSON {
	url, text, imageURL := PayloadFields(c.Payload)
	return contentJSON{
		ID:        c.ID,
		Title:     c.Title,
		Type:      c.Type(),
		URL:       url,
		Text:      text,
		ImageURL:  imageURL,
		Category:  c.CategoryID,
		Creator:   c.CreatorID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// MarshalJSON renders the payload as the url/text/imageUrl triplet with two nulls
func (c Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toJSON())
}

// MarshalJSON renders category and creator as populated objects
func (v ContentView) MarshalJSON() ([]byte, error) {
	out := v.Content.toJSON()
	if v.Category != nil {
		out.Category = v.Category
	} else {
		out.Category = nil
	}
	if v.Creator != nil {
		out.Creator = v.Creator
	} else {
		out.Creator = nil
	}
	return json.Marshal(out)
}

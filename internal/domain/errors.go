package domain

import (
	"errors"
	"fmt"
)

// Error messages are part of the HTTP contract and are returned to clients verbatim.
var (
	// ErrDuplicateIdentity indicates a user with the same username or email exists
	ErrDuplicateIdentity = errors.New("Username or email already exists")

	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords
	ErrInvalidCredentials = errors.New("Invalid email or password")

	// ErrInvalidRole indicates a role outside Admin, Reader and Creator
	ErrInvalidRole = errors.New("Invalid role")

	// ErrMissingIdentityField indicates username, email or password is empty
	ErrMissingIdentityField = errors.New("Username, email and password are required")

	// ErrDuplicateCategory indicates a category with the same name exists
	ErrDuplicateCategory = errors.New("Category already exists")

	// ErrMissingCategoryName indicates a category without a name
	ErrMissingCategoryName = errors.New("Category name is required")

	// ErrMissingCategoryFlags indicates a category request without all three capability flags
	ErrMissingCategoryFlags = errors.New("allowsImages, allowsVideos and allowsTexts are required")

	// ErrInvalidContentType indicates a type tag other than Image, Video or Text
	ErrInvalidContentType = errors.New("Invalid content type")

	// ErrInvalidCategory indicates the referenced category does not exist
	ErrInvalidCategory = errors.New("Invalid category")

	// ErrMissingPayload is the parent of every type-specific payload error
	ErrMissingPayload = errors.New("payload is required")

	// ErrMissingTitle indicates content without a title
	ErrMissingTitle = errors.New("Title is required")

	// ErrContentNotFound indicates the content does not exist
	ErrContentNotFound = errors.New("Content not found")

	// ErrUnauthorized indicates the caller does not own the content
	ErrUnauthorized = errors.New("Unauthorized")

	// ErrForbidden indicates the caller's role is not allowed
	ErrForbidden = errors.New("Forbidden")
)

// MissingPayloadError reports a content type whose payload field is empty.
type MissingPayloadError struct {
	Type ContentType
}

func (e *MissingPayloadError) Error() string {
	switch e.Type {
	case ContentTypeVideo:
		return "URL is required for videos"
	case ContentTypeText:
		return "Text is required for text content"
	case ContentTypeImage:
		return "Image URL is required for images"
	}
	return fmt.Sprintf("payload is required for %s", e.Type)
}

func (e *MissingPayloadError) Unwrap() error {
	return ErrMissingPayload
}

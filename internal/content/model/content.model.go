package model

import "github.com/shivraj416/egram/store"

// Create requests. Field names carry both json and form tags because admin
// pages submit either encoding. The validate tags drive required-field
// checks in the service; nothing is persisted when one fails.

type CreateNoticeRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Category    string `json:"type" form:"type"`
}

type CreateMemberRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Role    string `json:"role" form:"role" validate:"required"`
	Contact string `json:"contact" form:"contact" validate:"required"`
}

type CreateSchemeRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Start       string `json:"start" form:"start" validate:"required"`
	End         string `json:"end" form:"end" validate:"required"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Responses mirror the original site's payloads: reads wrap the collection
// under its name, writes return {status, <entity>}.

type InfoResponse struct {
	Info []store.Notice `json:"info"`
}

type MembersResponse struct {
	Members []store.Member `json:"members"`
}

type SchemesResponse struct {
	Schemes []store.Scheme `json:"schemes"`
}

type GalleryResponse struct {
	Images []store.GalleryImage `json:"images"`
}

type StatusResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Info    interface{} `json:"info,omitempty"`
	Member  interface{} `json:"member,omitempty"`
	Scheme  interface{} `json:"scheme,omitempty"`
	Image   interface{} `json:"image,omitempty"`
}

// ContactResponse always rides an HTTP 200; callers key off the flag.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

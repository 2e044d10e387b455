package handlers

import (
	"feirarinos/internal/backend"
	"feirarinos/internal/config"
	"feirarinos/internal/services"
)

type Deps struct {
	Directory *DirectoryHandler
	Register  *RegisterHandler
	Auth      *AuthHandler
	Contact   *ContactHandler
}

func NewDeps(be *backend.Backend, cfg config.Config) *Deps {
	authSvc := &services.AuthService{Identity: be, Sessions: be}
	return &Deps{
		Directory: &DirectoryHandler{Store: be, Location: cfg.LocationTag},
		Register:  NewRegisterHandler(be, be, cfg.LocationTag),
		Auth:      &AuthHandler{Auth: authSvc},
		Contact:   &ContactHandler{Store: be, BaseURL: cfg.WhatsAppBaseURL},
	}
}

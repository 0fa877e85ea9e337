package handlers

import (
	"platano/internal/services"
)

type Deps struct {
	Search   *SearchHandler
	Order    *OrderHandler
	Operator *OperatorHandler
	Auth     *AuthHandler
}

func NewDeps(catalog *services.CatalogService, auth *services.AuthService) *Deps {
	return &Deps{
		Search:   &SearchHandler{Catalog: catalog},
		Order:    &OrderHandler{Catalog: catalog},
		Operator: &OperatorHandler{Catalog: catalog},
		Auth:     &AuthHandler{Auth: auth},
	}
}

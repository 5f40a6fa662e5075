package router

import (
	"github.com/gin-gonic/gin"

	"github.com/optica/backend/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers served by the API. A nil handler leaves
// its routes unmounted.
type Handlers struct {
	System   *handler.SystemHandler
	Masks    *handler.MaskHandler
	Format   *handler.FormatHandler
	Address  *handler.AddressHandler
	Customer *handler.CustomerHandler
}

// Groups builds one DomainGroup per configured handler
func (h Handlers) Groups() []*DomainGroup {
	var groups []*DomainGroup

	if h.System != nil {
		groups = append(groups, NewDomainGroup("system", "/system").
			GET("/info", h.System.GetSystemInfo).
			GET("/ping", h.System.Ping))
	}

	if h.Masks != nil {
		groups = append(groups, NewDomainGroup("masks", "/masks").
			GET("", h.Masks.ListKinds).
			GET("/:kind", h.Masks.Apply))
	}

	if h.Format != nil {
		groups = append(groups, NewDomainGroup("format", "/format").
			GET("/locale", h.Format.Locale).
			GET("/currency", h.Format.Currency).
			GET("/date", h.Format.Date).
			GET("/datetime", h.Format.DateTime))
	}

	if h.Address != nil {
		groups = append(groups, NewDomainGroup("addresses", "/addresses").
			GET("/cep/:code", h.Address.LookupPostalCode))
	}

	if h.Customer != nil {
		customers := NewDomainGroup("customers", "/customers").
			POST("", h.Customer.Create).
			GET("", h.Customer.List).
			GET("/tax-id/:tax_id", h.Customer.GetByTaxID).
			GET("/:id", h.Customer.GetByID).
			DELETE("/:id", h.Customer.Delete)
		customers.Group("contact", "/:id").
			PUT("/contact", h.Customer.UpdateContact).
			PUT("/address", h.Customer.UpdateAddress).
			PATCH("/activate", h.Customer.Activate).
			PATCH("/deactivate", h.Customer.Deactivate)
		groups = append(groups, customers)
	}

	return groups
}

// Mount registers the health probe at the root and every API group under
// the versioned prefix. It returns the mounted API routes with full paths.
func Mount(engine *gin.Engine, h Handlers, opts ...RouterOption) []Route {
	if h.System != nil {
		engine.GET("/health", h.System.Health)
	}

	r := NewRouter(engine, opts...)
	var routes []Route
	for _, group := range h.Groups() {
		r.Register(group)
		for _, route := range group.Routes() {
			routes = append(routes, Route{Method: route.Method, Path: joinPath(r.BasePath(), route.Path)})
		}
	}
	r.Setup()
	return routes
}

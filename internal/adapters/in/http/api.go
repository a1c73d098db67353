package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers of api/openapi.json.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error
	// (POST /api/deliveries)
	CreateDelivery(ctx echo.Context) error
	// (GET /api/deliveries/mine)
	ListMyDeliveries(ctx echo.Context) error
	// (GET /api/deliveries/available)
	ListAvailableDeliveries(ctx echo.Context) error
	// (GET /api/deliveries/assigned-to-me)
	ListAssignedDeliveries(ctx echo.Context) error
	// (DELETE /api/deliveries/{id})
	CancelDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/deliveries/{id}/accept)
	AcceptDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (PATCH /api/deliveries/{id}/status)
	AdvanceDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error
	// (POST /api/deliveries/{id}/unassign)
	UnassignDelivery(ctx echo.Context, id openapi_types.UUID) error
	// (GET /api/shops)
	ListShops(ctx echo.Context) error
	// (GET /api/shops/{shopId})
	GetShop(ctx echo.Context, shopID string) error
	// (GET /api/shops/my/orders)
	ListShopOrders(ctx echo.Context) error
	// (PATCH /api/shops/my/orders/{id}/confirm)
	ConfirmShopOrder(ctx echo.Context, id openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) GetHealth(ctx echo.Context) error {
	return w.Handler.GetHealth(ctx)
}

func (w *ServerInterfaceWrapper) CreateDelivery(ctx echo.Context) error {
	return w.Handler.CreateDelivery(ctx)
}

func (w *ServerInterfaceWrapper) ListMyDeliveries(ctx echo.Context) error {
	return w.Handler.ListMyDeliveries(ctx)
}

func (w *ServerInterfaceWrapper) ListAvailableDeliveries(ctx echo.Context) error {
	return w.Handler.ListAvailableDeliveries(ctx)
}

func (w *ServerInterfaceWrapper) ListAssignedDeliveries(ctx echo.Context) error {
	return w.Handler.ListAssignedDeliveries(ctx)
}

func (w *ServerInterfaceWrapper) CancelDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.CancelDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) AcceptDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AcceptDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) AdvanceDeliveryStatus(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AdvanceDeliveryStatus(ctx, id)
}

func (w *ServerInterfaceWrapper) UnassignDelivery(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UnassignDelivery(ctx, id)
}

func (w *ServerInterfaceWrapper) ListShops(ctx echo.Context) error {
	return w.Handler.ListShops(ctx)
}

func (w *ServerInterfaceWrapper) GetShop(ctx echo.Context) error {
	var shopID string
	err := runtime.BindStyledParameterWithOptions("simple", "shopId", ctx.Param("shopId"), &shopID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter shopId: %s", err))
	}
	return w.Handler.GetShop(ctx, shopID)
}

func (w *ServerInterfaceWrapper) ListShopOrders(ctx echo.Context) error {
	return w.Handler.ListShopOrders(ctx)
}

func (w *ServerInterfaceWrapper) ConfirmShopOrder(ctx echo.Context) error {
	id, err := bindDeliveryID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ConfirmShopOrder(ctx, id)
}

func bindDeliveryID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RouteMiddleware is attached per route: Public to the anonymous routes,
// Protected to the routes that need a verified actor.
type RouteMiddleware struct {
	Public    []echo.MiddlewareFunc
	Protected []echo.MiddlewareFunc
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, mw RouteMiddleware) {
	RegisterHandlersWithBaseURL(router, si, "", mw)
}

// RegisterHandlersWithBaseURL registers the handlers, prefixing every path
// with baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string, mw RouteMiddleware) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/health", wrapper.GetHealth)
	router.GET(baseURL+"/api/shops", wrapper.ListShops, mw.Public...)
	router.GET(baseURL+"/api/shops/:shopId", wrapper.GetShop, mw.Public...)

	router.POST(baseURL+"/api/deliveries", wrapper.CreateDelivery, mw.Protected...)
	router.GET(baseURL+"/api/deliveries/mine", wrapper.ListMyDeliveries, mw.Protected...)
	router.GET(baseURL+"/api/deliveries/available", wrapper.ListAvailableDeliveries, mw.Protected...)
	router.GET(baseURL+"/api/deliveries/assigned-to-me", wrapper.ListAssignedDeliveries, mw.Protected...)
	router.DELETE(baseURL+"/api/deliveries/:id", wrapper.CancelDelivery, mw.Protected...)
	router.POST(baseURL+"/api/deliveries/:id/accept", wrapper.AcceptDelivery, mw.Protected...)
	router.PATCH(baseURL+"/api/deliveries/:id/status", wrapper.AdvanceDeliveryStatus, mw.Protected...)
	router.POST(baseURL+"/api/deliveries/:id/unassign", wrapper.UnassignDelivery, mw.Protected...)
	router.GET(baseURL+"/api/shops/my/orders", wrapper.ListShopOrders, mw.Protected...)
	router.PATCH(baseURL+"/api/shops/my/orders/:id/confirm", wrapper.ConfirmShopOrder, mw.Protected...)
}

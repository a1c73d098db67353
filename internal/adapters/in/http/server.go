// Package http is the REST adapter: it authenticates the caller, binds the
// request, runs the matching command or query and renders the result.
package http

import (
	"net/http"

	"grameego/internal/core/application/usecases/commands"
	"grameego/internal/core/application/usecases/queries"
	"grameego/internal/core/domain/model/kernel"
	"grameego/internal/pkg/normalize"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface on top of the use cases.
type Server struct {
	// Command handlers
	createHandler   commands.CreateDeliveryCommandHandler
	acceptHandler   commands.AcceptDeliveryCommandHandler
	advanceHandler  commands.AdvanceDeliveryStatusCommandHandler
	unassignHandler commands.UnassignDeliveryCommandHandler
	cancelHandler   commands.CancelDeliveryCommandHandler
	confirmHandler  commands.ConfirmShopOrderCommandHandler

	// Query handlers
	listHandler      queries.ListDeliveriesQueryHandler
	listShopsHandler queries.ListShopsQueryHandler
	getShopHandler   queries.GetShopQueryHandler
}

// Handlers groups the use cases the server needs.
type Handlers struct {
	Create   commands.CreateDeliveryCommandHandler
	Accept   commands.AcceptDeliveryCommandHandler
	Advance  commands.AdvanceDeliveryStatusCommandHandler
	Unassign commands.UnassignDeliveryCommandHandler
	Cancel   commands.CancelDeliveryCommandHandler
	Confirm  commands.ConfirmShopOrderCommandHandler

	List      queries.ListDeliveriesQueryHandler
	ListShops queries.ListShopsQueryHandler
	GetShop   queries.GetShopQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		createHandler:    h.Create,
		acceptHandler:    h.Accept,
		advanceHandler:   h.Advance,
		unassignHandler:  h.Unassign,
		cancelHandler:    h.Cancel,
		confirmHandler:   h.Confirm,
		listHandler:      h.List,
		listShopsHandler: h.ListShops,
		getShopHandler:   h.GetShop,
	}
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateDelivery handles POST /api/deliveries.
func (s *Server) CreateDelivery(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body CreateDeliveryRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewCreateDeliveryCommand(actor, body.toInput())
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newDeliveryResponse(created.Snapshot()))
}

// ListMyDeliveries handles GET /api/deliveries/mine.
func (s *Server) ListMyDeliveries(ctx echo.Context) error {
	return s.list(ctx, queries.ScopeMine)
}

// ListAvailableDeliveries handles GET /api/deliveries/available.
func (s *Server) ListAvailableDeliveries(ctx echo.Context) error {
	return s.list(ctx, queries.ScopeAvailable)
}

// ListAssignedDeliveries handles GET /api/deliveries/assigned-to-me.
func (s *Server) ListAssignedDeliveries(ctx echo.Context) error {
	return s.list(ctx, queries.ScopeAssignedToMe)
}

// ListShopOrders handles GET /api/shops/my/orders.
func (s *Server) ListShopOrders(ctx echo.Context) error {
	return s.list(ctx, queries.ScopeShopOrders)
}

// AcceptDelivery handles POST /api/deliveries/{id}/accept. A lost race is a
// 409.
func (s *Server) AcceptDelivery(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptDeliveryCommand(actor, kernel.UUIDFromGoogle(id))
	if err != nil {
		return writeError(ctx, err)
	}

	claimed, err := s.acceptHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newDeliveryResponse(claimed.Snapshot()))
}

// AdvanceDeliveryStatus handles PATCH /api/deliveries/{id}/status.
func (s *Server) AdvanceDeliveryStatus(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body StatusChangeRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewAdvanceDeliveryStatusCommand(actor, kernel.UUIDFromGoogle(id), body.NewStatus)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.advanceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryUpdateResponse{
		Message:  "Updated",
		Delivery: newDeliveryResponse(updated.Snapshot()),
	})
}

// UnassignDelivery handles POST /api/deliveries/{id}/unassign.
func (s *Server) UnassignDelivery(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUnassignDeliveryCommand(actor, kernel.UUIDFromGoogle(id))
	if err != nil {
		return writeError(ctx, err)
	}

	released, err := s.unassignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryUpdateResponse{
		Message:  "Unassigned",
		Delivery: newDeliveryResponse(released.Snapshot()),
	})
}

// CancelDelivery handles DELETE /api/deliveries/{id}.
func (s *Server) CancelDelivery(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryCommand(actor, kernel.UUIDFromGoogle(id))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.cancelHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Cancelled"})
}

// ConfirmShopOrder handles PATCH /api/shops/my/orders/{id}/confirm.
func (s *Server) ConfirmShopOrder(ctx echo.Context, id openapi_types.UUID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body ShopDecisionRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}

	cmd, err := commands.NewConfirmShopOrderCommand(actor, kernel.UUIDFromGoogle(id), body.Action, normalize.Text(body.Note))
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.confirmHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeliveryUpdateResponse{
		Message:  "Updated",
		Delivery: newDeliveryResponse(updated.Snapshot()),
	})
}

// ListShops handles GET /api/shops.
func (s *Server) ListShops(ctx echo.Context) error {
	shops, err := s.listShopsHandler.Handle(ctx.Request().Context())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newShopSummaries(shops))
}

// GetShop handles GET /api/shops/{shopId}.
func (s *Server) GetShop(ctx echo.Context, shopID string) error {
	query, err := queries.NewGetShopQuery(shopID)
	if err != nil {
		return writeError(ctx, err)
	}

	found, err := s.getShopHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newShopResponse(found))
}

func (s *Server) list(ctx echo.Context, scope queries.Scope) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewListDeliveriesQuery(actor, scope)
	if err != nil {
		return writeError(ctx, err)
	}

	snaps, err := s.listHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, newDeliveryList(snaps))
}

package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/access"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server adapts HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{handlers: handlers, logger: logger.With("component", "HttpServer")}
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	view, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromView(view))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.CancelOrder.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("cancel_order", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// CreateReturnRequest handles POST /api/v1/orders/{orderId}/items/{itemId}/return.
func (s *Server) CreateReturnRequest(c echo.Context) error {
	return s.createReturnReplace(c, "create_return_request", commands.NewCreateReturnRequestCommand)
}

// CreateReplaceRequest handles POST /api/v1/orders/{orderId}/items/{itemId}/replace.
func (s *Server) CreateReplaceRequest(c echo.Context) error {
	return s.createReturnReplace(c, "create_replace_request", commands.NewCreateReplaceRequestCommand)
}

type createRequestCommand func(
	orderID, orderItemID kernel.UUID,
	actor access.Actor,
	reason *string,
) (commands.CreateReturnReplaceCommand, error)

func (s *Server) createReturnReplace(c echo.Context, operation string, newCommand createRequestCommand) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	itemID, err := pathUUID(c, "itemId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := bindReason(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := newCommand(orderID, itemID, actorFrom(c), body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	request, err := s.handlers.CreateReturnReplace.Handle(c.Request().Context(), cmd)
	RecordOrderOperation(operation, err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, requestFromDomain(request))
}

// ListVendorOrders handles GET /api/v1/vendor/orders.
func (s *Server) ListVendorOrders(c echo.Context) error {
	params, err := bindListParams(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	query, err := queries.NewListVendorOrdersQuery(actorFrom(c), params.status(), params.limit(), params.offset())
	if err != nil {
		return s.fail(c, err)
	}
	page, err := s.handlers.ListVendorOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, pageFromView(page))
}

// VendorCancelOrder handles POST /api/v1/vendor/orders/{orderId}/cancel.
func (s *Server) VendorCancelOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := bindReason(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewVendorCancelOrderCommand(orderID, actorFrom(c), body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.VendorCancelOrder.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("vendor_cancel_order", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// ConfirmOrder handles POST /api/v1/vendor/orders/{orderId}/confirm.
func (s *Server) ConfirmOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.ConfirmOrder.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("confirm_order", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// RejectOrder handles POST /api/v1/vendor/orders/{orderId}/reject.
func (s *Server) RejectOrder(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := bindReason(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewRejectOrderCommand(orderID, actorFrom(c), body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.RejectOrder.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("reject_order", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// UpdateOrderStatus handles PUT /api/v1/vendor/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "orderId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	var body UpdateStatusRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err = c.Validate(&body); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, actorFrom(c), body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	o, err := s.handlers.UpdateOrderStatus.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("update_order_status", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, orderFromDomain(o))
}

// ApproveReturnReplace handles POST /api/v1/return-requests/{requestId}/approve.
func (s *Server) ApproveReturnReplace(c echo.Context) error {
	requestID, err := pathUUID(c, "requestId")
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewApproveReturnReplaceCommand(requestID, actorFrom(c))
	if err != nil {
		return s.fail(c, err)
	}
	request, err := s.handlers.ApproveReturnReplace.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("approve_return_replace", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, requestFromDomain(request))
}

// RejectReturnReplace handles POST /api/v1/return-requests/{requestId}/reject.
func (s *Server) RejectReturnReplace(c echo.Context) error {
	requestID, err := pathUUID(c, "requestId")
	if err != nil {
		return badRequest(c, err.Error())
	}
	body, err := bindReason(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewRejectReturnReplaceCommand(requestID, actorFrom(c), body.Reason)
	if err != nil {
		return s.fail(c, err)
	}
	request, err := s.handlers.RejectReturnReplace.Handle(c.Request().Context(), cmd)
	RecordOrderOperation("reject_return_replace", err)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, requestFromDomain(request))
}

// bindReason reads the optional {reason} body.
func bindReason(c echo.Context) (ReasonRequest, error) {
	var body ReasonRequest
	if err := c.Bind(&body); err != nil {
		return body, err
	}
	if err := c.Validate(&body); err != nil {
		return body, err
	}
	return body, nil
}

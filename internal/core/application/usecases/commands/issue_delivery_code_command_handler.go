package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"foodflow/internal/core/ports"
	"foodflow/internal/pkg/errs"
)

// IssueDeliveryCodeResult reports how code delivery went.
type IssueDeliveryCodeResult struct {
	// Delayed is set when the code was stored but could not be sent. The code
	// is still valid; the rider can retry the send by reissuing.
	Delayed bool
}

// IssueDeliveryCodeCommandHandler generates a four-digit one-time code, stores
// it on the shop order with its expiry, and emails it to the customer. The
// store commits before the send: a mail outage delays delivery confirmation,
// it never loses the code.
type IssueDeliveryCodeCommandHandler struct {
	uowFactory OrderUoWFactory
	directory  ports.Directory
	sender     ports.CodeSender
	logger     *slog.Logger
}

// NewIssueDeliveryCodeCommandHandler creates a handler for code issuing.
func NewIssueDeliveryCodeCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.Directory,
	sender ports.CodeSender,
	logger *slog.Logger,
) IssueDeliveryCodeCommandHandler {
	return IssueDeliveryCodeCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		sender:     sender,
		logger:     logger,
	}
}

// Handle issues the code. Only the assigned rider may request it; for anyone
// else the shop order does not exist.
func (h *IssueDeliveryCodeCommandHandler) Handle(
	ctx context.Context,
	cmd IssueDeliveryCodeCommand,
) (IssueDeliveryCodeResult, error) {
	if err := cmd.Validate(); err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	code, err := generateDeliveryCode()
	if err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetByShopOrder(ctx, cmd.ShopOrderID())
	if err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	shopOrder, err := aggregate.ShopOrderByID(cmd.ShopOrderID())
	if err != nil {
		return IssueDeliveryCodeResult{}, err
	}
	if shopOrder.Rider() == nil || !shopOrder.Rider().IsEqual(cmd.RiderID()) {
		return IssueDeliveryCodeResult{}, errs.NewObjectNotFoundError(
			"shop order", cmd.ShopOrderID().String())
	}

	if err = shopOrder.IssueDeliveryCode(code, time.Now()); err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IssueDeliveryCodeResult{}, err
	}

	contact, err := h.directory.GetCustomerContact(ctx, aggregate.CustomerID())
	if err != nil {
		h.logger.Warn("customer contact lookup failed, code delivery delayed",
			"shopOrderId", cmd.ShopOrderID().String(), "error", err)
		return IssueDeliveryCodeResult{Delayed: true}, nil
	}

	if err = h.sender.SendOneTimeCode(ctx, contact.Email, contact.Name, code); err != nil {
		h.logger.Warn("code send failed, code delivery delayed",
			"shopOrderId", cmd.ShopOrderID().String(), "error", err)
		return IssueDeliveryCodeResult{Delayed: true}, nil
	}

	return IssueDeliveryCodeResult{}, nil
}

// generateDeliveryCode returns a uniformly random four-digit code.
func generateDeliveryCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}

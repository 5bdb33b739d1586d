package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/temidayo/shareboard/internal/apperrors"
	"github.com/temidayo/shareboard/internal/handlers/render"
	"github.com/temidayo/shareboard/internal/logger"
	"github.com/temidayo/shareboard/internal/models"
)

func handlePurchase(s walletService, l logger.Logger) http.Handler {
	type request struct {
		UserID uuid.UUID       `json:"userId" validate:"required"`
		Kind   string          `json:"kind" validate:"required,oneof=regular cofounder"`
		Shares int64           `json:"shares" validate:"required,min=1"`
		Amount decimal.Decimal `json:"amount"`
	}

	type response struct {
		Success   bool            `json:"success"`
		ID        uuid.UUID       `json:"id"`
		Kind      string          `json:"kind"`
		Amount    decimal.Decimal `json:"amount"`
		CreatedAt time.Time       `json:"createdAt"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		tx, err := s.Purchase(r.Context(), req.UserID, req.Kind, req.Shares, req.Amount)

		switch {
		case err == nil:
			render.JSONWithStatus(w, response{
				Success:   true,
				ID:        tx.ID,
				Kind:      tx.Kind,
				Amount:    tx.TotalAmount,
				CreatedAt: tx.CreatedAt,
			}, http.StatusCreated)
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInvalidShareKind):
			render.Fail(w, "Invalid purchase", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.Fail(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to record purchase", "error", err)
			render.Fail(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleReferralCredit(s referralService, l logger.Logger) http.Handler {
	type request struct {
		UserID uuid.UUID       `json:"userId" validate:"required"`
		Amount decimal.Decimal `json:"amount"`
	}

	type response struct {
		Success       bool            `json:"success"`
		ReferralCount int64           `json:"referralCount"`
		TotalEarnings decimal.Decimal `json:"totalEarnings"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		referral, err := s.Credit(r.Context(), req.UserID, req.Amount)

		switch {
		case err == nil:
			render.JSON(w, response{
				Success:       true,
				ReferralCount: referral.ReferredUsers,
				TotalEarnings: referral.TotalEarnings,
			})
		case errors.Is(err, apperrors.ErrInvalidAmount):
			render.Fail(w, "Amount must not be negative", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.Fail(w, "User not found", http.StatusNotFound)
		default:
			l.Error("Failed to credit referral", "error", err)
			render.Fail(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleRequestWithdrawal(s walletService, l logger.Logger) http.Handler {
	type request struct {
		UserID uuid.UUID       `json:"userId" validate:"required"`
		Amount decimal.Decimal `json:"amount"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		withdrawal, err := s.RequestWithdrawal(r.Context(), req.UserID, req.Amount)

		switch {
		case err == nil:
			render.JSONWithStatus(w, withdrawalResponse(withdrawal), http.StatusCreated)
		case errors.Is(err, apperrors.ErrInvalidAmount):
			render.Fail(w, "Amount must be positive", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrBalanceInsufficient):
			render.Fail(w, "Insufficient referral balance", http.StatusPaymentRequired)
		default:
			l.Error("Failed to request withdrawal", "error", err)
			render.Fail(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleTransitionWithdrawal(s walletService, l logger.Logger) http.Handler {
	type request struct {
		Status string `json:"status" validate:"required,oneof=processing approved paid rejected"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			render.Fail(w, "Invalid withdrawal id", http.StatusBadRequest)
			return
		}

		req, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		withdrawal, err := s.TransitionWithdrawal(r.Context(), id, req.Status)

		switch {
		case err == nil:
			render.JSON(w, withdrawalResponse(withdrawal))
		case errors.Is(err, apperrors.ErrWithdrawalNotFound):
			render.Fail(w, "Withdrawal not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrWithdrawalInvalidTransition):
			render.Fail(w, "Invalid status transition", http.StatusConflict)
		default:
			l.Error("Failed to transition withdrawal", "error", err)
			render.Fail(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

type withdrawalBody struct {
	Success   bool            `json:"success"`
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

func withdrawalResponse(w models.Withdrawal) withdrawalBody {
	return withdrawalBody{
		Success:   true,
		ID:        w.ID,
		UserID:    w.UserID,
		Amount:    w.Amount,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
	}
}

package httpadapter

import (
	"context"
	"log/slog"

	"helvetia/contexts/identity/account-service/application/commands"
	"helvetia/contexts/identity/account-service/application/queries"
	"helvetia/contexts/identity/account-service/domain/entities"
	httptransport "helvetia/contexts/identity/account-service/transport/http"
)

type Handler struct {
	SignUp      commands.SignUpUseCase
	SignIn      commands.SignInUseCase
	SignOut     commands.SignOutUseCase
	LoadSession queries.LoadSessionUseCase
	Logger      *slog.Logger
}

func (h Handler) SignUpHandler(ctx context.Context, req httptransport.SignUpRequest) (httptransport.AuthResponse, error) {
	result, err := h.SignUp.Execute(ctx, commands.SignUpCommand{
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		CompanyName:  req.CompanyName,
		Website:      req.Website,
		Industry:     req.Industry,
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		Niches:       req.Niches,
		Languages:    req.Languages,
		RateCHF:      req.RateCHF,
		PortfolioURL: req.PortfolioURL,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return mapAuthResult(result), nil
}

func (h Handler) SignInHandler(ctx context.Context, req httptransport.SignInRequest) (httptransport.AuthResponse, error) {
	result, err := h.SignIn.Execute(ctx, commands.SignInCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.AuthResponse{}, err
	}
	return mapAuthResult(result), nil
}

func (h Handler) SignOutHandler(ctx context.Context, userID string) error {
	return h.SignOut.Execute(ctx, userID)
}

func (h Handler) GetSessionHandler(ctx context.Context, userID string) (httptransport.SessionResponse, error) {
	session, err := h.LoadSession.Execute(ctx, userID)
	if err != nil {
		return httptransport.SessionResponse{}, err
	}
	return httptransport.SessionResponse{Session: mapSession(session)}, nil
}

func mapAuthResult(result commands.AuthResult) httptransport.AuthResponse {
	return httptransport.AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		Session:   mapSession(result.Session),
	}
}

func mapSession(session entities.Session) httptransport.SessionDTO {
	dto := httptransport.SessionDTO{
		UserID: session.UserID,
		Email:  session.Email,
		Role:   session.Role,
	}
	if session.BrandProfile != nil {
		dto.BrandProfile = &httptransport.BrandProfileDTO{
			CompanyName: session.BrandProfile.CompanyName,
			Website:     session.BrandProfile.Website,
			Industry:    session.BrandProfile.Industry,
		}
	}
	if session.CreatorProfile != nil {
		dto.CreatorProfile = &httptransport.CreatorProfileDTO{
			DisplayName:  session.CreatorProfile.DisplayName,
			Bio:          session.CreatorProfile.Bio,
			Niches:       session.CreatorProfile.Niches,
			Languages:    session.CreatorProfile.Languages,
			RateCHF:      session.CreatorProfile.RateCHF,
			PortfolioURL: session.CreatorProfile.PortfolioURL,
		}
	}
	return dto
}

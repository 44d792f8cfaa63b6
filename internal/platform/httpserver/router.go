package httpserver

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "helvetia/internal/platform/httpserver/docs"

	messagingservice "helvetia/contexts/engagement/messaging-service"
	messagingtransport "helvetia/contexts/engagement/messaging-service/transport/http"
	notificationservice "helvetia/contexts/engagement/notification-service"
	accountservice "helvetia/contexts/identity/account-service"
	accounttransport "helvetia/contexts/identity/account-service/transport/http"
	applicationservice "helvetia/contexts/marketplace/application-service"
	applicationtransport "helvetia/contexts/marketplace/application-service/transport/http"
	campaignservice "helvetia/contexts/marketplace/campaign-service"
	campaigntransport "helvetia/contexts/marketplace/campaign-service/transport/http"
	contractservice "helvetia/contexts/marketplace/contract-service"
	clipservice "helvetia/contexts/studio/clip-service"
	cliptransport "helvetia/contexts/studio/clip-service/transport/http"
)

// Modules collects every bounded-context module the API process serves.
type Modules struct {
	Accounts      accountservice.Module
	Campaigns     campaignservice.Module
	Applications  applicationservice.Module
	Contracts     contractservice.Module
	Messaging     messagingservice.Module
	Notifications notificationservice.Module
	Clips         clipservice.Module
}

func NewRouter(modules Modules, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/signup", func(w http.ResponseWriter, req *http.Request) {
			var body accounttransport.SignUpRequest
			if !decodeBody(w, req, &body) {
				return
			}
			resp, err := modules.Accounts.Handler.SignUpHandler(req.Context(), body)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, resp)
		})
		r.Post("/auth/signin", func(w http.ResponseWriter, req *http.Request) {
			var body accounttransport.SignInRequest
			if !decodeBody(w, req, &body) {
				return
			}
			resp, err := modules.Accounts.Handler.SignInHandler(req.Context(), body)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, resp)
		})

		r.Group(func(r chi.Router) {
			r.Use(Auth(modules.Accounts.Tokens))

			r.Post("/auth/signout", func(w http.ResponseWriter, req *http.Request) {
				if err := modules.Accounts.Handler.SignOutHandler(req.Context(), userIDFrom(req.Context())); err != nil {
					writeDomainError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
			})
			r.Get("/auth/session", func(w http.ResponseWriter, req *http.Request) {
				resp, err := modules.Accounts.Handler.GetSessionHandler(req.Context(), userIDFrom(req.Context()))
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, resp)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Post("/", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.CreateCampaignRequest
					if !decodeBody(w, req, &body) {
						return
					}
					resp, err := modules.Campaigns.Handler.CreateCampaignHandler(
						req.Context(), userIDFrom(req.Context()), req.Header.Get("Idempotency-Key"), body)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					status := http.StatusCreated
					if resp.Replayed {
						status = http.StatusOK
					}
					writeJSON(w, status, resp)
				})
				r.Get("/", func(w http.ResponseWriter, req *http.Request) {
					query := req.URL.Query()
					resp, err := modules.Campaigns.Handler.ListCampaignsHandler(
						req.Context(), query.Get("brand_id"), query.Get("creator_id"), query.Get("status"))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Get("/{campaignID}", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Campaigns.Handler.GetCampaignHandler(req.Context(), chi.URLParam(req, "campaignID"))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Post("/{campaignID}/propose", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.ProposeCreatorsRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.ProposeCreatorsHandler(
						req.Context(), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/select", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.SelectCreatorRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.SelectCreatorHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/reject-profiles", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.RejectProfilesRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.RejectProfilesHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/script", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.SubmitScriptRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.SubmitScriptHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/script/review", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.ReviewScriptRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.ReviewScriptHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/video", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.SubmitVideoRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.SubmitVideoHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/video/review", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.ReviewVideoRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.ReviewVideoHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})
				r.Post("/{campaignID}/complete", func(w http.ResponseWriter, req *http.Request) {
					runCommand(w, modules.Campaigns.Handler.CompleteMissionHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID")))
				})
				r.Post("/{campaignID}/cancel", func(w http.ResponseWriter, req *http.Request) {
					var body campaigntransport.CancelCampaignRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Campaigns.Handler.CancelCampaignHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"), body))
				})

				r.Post("/{campaignID}/applications", func(w http.ResponseWriter, req *http.Request) {
					var body applicationtransport.ApplyRequest
					if !decodeBody(w, req, &body) {
						return
					}
					body.CampaignID = chi.URLParam(req, "campaignID")
					resp, err := modules.Applications.Handler.ApplyHandler(req.Context(), userIDFrom(req.Context()), body)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusCreated, resp)
				})
				r.Get("/{campaignID}/applications", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Applications.Handler.ListByCampaignHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "campaignID"))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
			})

			r.Route("/applications", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Applications.Handler.ListByCreatorHandler(req.Context(), userIDFrom(req.Context()))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Post("/{applicationID}/withdraw", func(w http.ResponseWriter, req *http.Request) {
					runCommand(w, modules.Applications.Handler.WithdrawHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "applicationID")))
				})
				r.Post("/{applicationID}/decision", func(w http.ResponseWriter, req *http.Request) {
					var body applicationtransport.DecideRequest
					if !decodeBody(w, req, &body) {
						return
					}
					runCommand(w, modules.Applications.Handler.DecideHandler(
						req.Context(), userIDFrom(req.Context()), roleFrom(req.Context()), chi.URLParam(req, "applicationID"), body))
				})
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Contracts.Handler.ListContractsHandler(req.Context(), userIDFrom(req.Context()))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Get("/{contractID}", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Contracts.Handler.GetContractHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "contractID"))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Post("/{contractID}/sign", func(w http.ResponseWriter, req *http.Request) {
					runCommand(w, modules.Contracts.Handler.SignContractHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "contractID")))
				})
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", func(w http.ResponseWriter, req *http.Request) {
					var body messagingtransport.StartConversationRequest
					if !decodeBody(w, req, &body) {
						return
					}
					resp, err := modules.Messaging.Handler.StartConversationHandler(req.Context(), userIDFrom(req.Context()), body)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusCreated, resp)
				})
				r.Get("/", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Messaging.Handler.ListConversationsHandler(req.Context(), userIDFrom(req.Context()))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Get("/{conversationID}/messages", func(w http.ResponseWriter, req *http.Request) {
					limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
					resp, err := modules.Messaging.Handler.ListMessagesHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "conversationID"), limit)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Post("/{conversationID}/messages", func(w http.ResponseWriter, req *http.Request) {
					var body messagingtransport.SendMessageRequest
					if !decodeBody(w, req, &body) {
						return
					}
					resp, err := modules.Messaging.Handler.SendMessageHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "conversationID"), body)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusCreated, resp)
				})
				r.Post("/{conversationID}/read", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Messaging.Handler.MarkReadHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "conversationID"))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, req *http.Request) {
					query := req.URL.Query()
					unreadOnly := query.Get("unread") == "true"
					limit, _ := strconv.Atoi(query.Get("limit"))
					resp, err := modules.Notifications.Handler.ListNotificationsHandler(
						req.Context(), userIDFrom(req.Context()), unreadOnly, limit)
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Get("/counters", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Notifications.Handler.GetCountersHandler(req.Context(), userIDFrom(req.Context()))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
				r.Post("/{notificationID}/read", func(w http.ResponseWriter, req *http.Request) {
					runCommand(w, modules.Notifications.Handler.MarkReadHandler(
						req.Context(), userIDFrom(req.Context()), chi.URLParam(req, "notificationID")))
				})
				r.Post("/read-all", func(w http.ResponseWriter, req *http.Request) {
					resp, err := modules.Notifications.Handler.MarkAllReadHandler(req.Context(), userIDFrom(req.Context()))
					if err != nil {
						writeDomainError(w, err)
						return
					}
					writeJSON(w, http.StatusOK, resp)
				})
			})

			r.Post("/clips/trim", func(w http.ResponseWriter, req *http.Request) {
				var body cliptransport.TrimRequest
				if !decodeBody(w, req, &body) {
					return
				}
				resp, err := modules.Clips.Handler.TrimHandler(req.Context(), userIDFrom(req.Context()), body)
				if err != nil {
					writeDomainError(w, err)
					return
				}
				writeJSON(w, http.StatusCreated, resp)
			})
		})
	})

	if logger != nil {
		logger.Info("router composed",
			"event", "http_router_ready",
			"module", "internal/platform/httpserver",
			"layer", "platform",
		)
	}
	return r
}

func runCommand(w http.ResponseWriter, err error) {
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charbel291291291/election2026/internal/common"
	"github.com/charbel291291291/election2026/internal/server/models"
)

type profileResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id"`
	RootAdmin      bool   `json:"root_admin"`
}

func profileOf(agent *models.Agent) profileResponse {
	return profileResponse{
		ID:             agent.ID,
		FullName:       agent.FullName,
		PhoneNumber:    agent.PhoneNumber,
		Role:           agent.Role,
		OrganizationID: agent.OrganizationID,
		RootAdmin:      agent.IsRootAdmin,
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	PIN         string `json:"pin"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Profile profileResponse `json:"profile"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, agent, err := s.auth.Login(r.Context(), req.PhoneNumber, req.PIN, originAddr(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Profile: profileOf(agent)})
}

type escalateRequest struct {
	PIN string `json:"pin"`
}

type escalateResponse struct {
	Token string `json:"token"`
}

// handleEscalateRoot verifies the root PIN for the already-authenticated
// agent. The request body carries only the PIN; identity comes from the
// session token.
func (s *Server) handleEscalateRoot(w http.ResponseWriter, r *http.Request) {
	var req escalateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	token, err := s.auth.EscalateRoot(r.Context(), agentFrom(r.Context()), req.PIN, originAddr(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, escalateResponse{Token: token})
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	var report models.Report
	if err := decodeBody(r, &report); err != nil {
		writeError(w, err)
		return
	}

	if err := s.reports.Submit(r.Context(), agentFrom(r.Context()), &report); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

type listReportsResponse struct {
	Reports []models.Report `json:"reports"`
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	agent := agentFrom(r.Context())

	reports, err := s.reports.List(r.Context(), agent.OrganizationID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listReportsResponse{Reports: reports})
}

type presignResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (s *Server) handlePresign(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.reports.GetPresignedPutUrl(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "presign failed", "error", err.Error())
		writeError(w, common.ErrInternal)
		return
	}

	writeJSON(w, http.StatusOK, presignResponse{Key: key, URL: url})
}

type rootActionRequest struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

type rootActionResponse struct {
	Result map[string]any `json:"result,omitempty"`
}

func (s *Server) handleRootAction(w http.ResponseWriter, r *http.Request) {
	var req rootActionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	result, err := s.admin.InvokeAction(ctx, claimsFrom(ctx), agentFrom(ctx), req.Action, req.Payload, originAddr(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rootActionResponse{Result: result})
}

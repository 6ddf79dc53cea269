package service

import (
	"context"

	"material-store/internal/model"
	"material-store/internal/repository"
)

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, actor Actor, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

// GetAuditLogs retrieves paginated records with the acting user pre-loaded.
// The trail is for the master's oversight only.
func (s *auditService) GetAuditLogs(ctx context.Context, actor Actor, page, limit int) ([]AuditLogResponse, int64, error) {
	if err := actor.require(model.RoleMaster); err != nil {
		return nil, 0, err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		userName := "System"
		userID := ""
		if l.User != nil {
			userName = l.User.Name
		}
		if l.UserID != nil {
			userID = l.UserID.String()
		}
		res = append(res, AuditLogResponse{
			ID:         l.ID.String(),
			UserID:     userID,
			UserName:   userName,
			Action:     l.Action,
			EntityID:   l.EntityID,
			EntityName: l.EntityName,
			Details:    l.Details,
			CreatedAt:  l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}

package services

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventplanner/internal/logger"
	"eventplanner/internal/models"
)

// Audit actions.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
)

type auditService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewAuditService returns an AuditServicer writing to the audit_logs table.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db, log: logger.Named("audit")}
}

// Log records one document write. A failed write is logged and swallowed so
// the caller's operation still succeeds.
func (s *auditService) Log(userID, action, collection, documentID, ipAddress string, changes map[string]any) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: collection,
		ResourceID:   documentID,
		IPAddress:    ipAddress,
		Changes:      s.encodeChanges(changes),
	}

	if err := s.db.Create(entry).Error; err != nil {
		s.log.Errorw("audit write failed",
			"error", err,
			"user_id", userID,
			"action", action,
			"collection", collection,
			"document_id", documentID,
		)
	}
}

func (s *auditService) encodeChanges(changes map[string]any) string {
	if len(changes) == 0 {
		return ""
	}
	data, err := json.Marshal(changes)
	if err != nil {
		s.log.Warnw("audit changes not encodable", "error", err)
		return "{}"
	}
	return string(data)
}

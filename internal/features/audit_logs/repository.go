package audit_logs

import (
	"time"

	"agilcurn/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(auditLog *AuditLog) error {
	if auditLog.ID == uuid.Nil {
		auditLog.ID = uuid.New()
	}

	return storage.GetDb().Create(auditLog).Error
}

func (r *AuditLogRepository) GetByUser(
	userID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	query := r.baseQuery().Where("audit_logs.user_id = ?", userID)
	if beforeDate != nil {
		query = query.Where("audit_logs.created_at < ?", *beforeDate)
	}

	err := query.
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) GetByProject(
	projectID uuid.UUID,
	limit, offset int,
	beforeDate *time.Time,
) ([]*AuditLogDTO, error) {
	var auditLogs = make([]*AuditLogDTO, 0)

	query := r.baseQuery().Where("audit_logs.project_id = ?", projectID)
	if beforeDate != nil {
		query = query.Where("audit_logs.created_at < ?", *beforeDate)
	}

	err := query.
		Order("audit_logs.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&auditLogs).Error

	return auditLogs, err
}

func (r *AuditLogRepository) baseQuery() *gorm.DB {
	return storage.GetDb().
		Model(&AuditLog{}).
		Select(
			"audit_logs.id, audit_logs.user_id, audit_logs.project_id, audit_logs.message, " +
				"audit_logs.created_at, users.email AS user_email, projects.name AS project_name",
		).
		Joins("LEFT JOIN users ON audit_logs.user_id = users.id").
		Joins("LEFT JOIN projects ON audit_logs.project_id = projects.id")
}

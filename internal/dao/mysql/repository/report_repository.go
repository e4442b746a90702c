package repository

import (
	"campus_link_server/internal/model"

	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建举报 Repository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create 创建举报记录
func (r *reportRepository) Create(report *model.Report) error {
	if err := r.db.Create(report).Error; err != nil {
		return wrapDBError(err, "创建举报记录")
	}
	return nil
}

// FindByReporterId 查找用户提交的举报记录
func (r *reportRepository) FindByReporterId(reporterId string) ([]model.Report, error) {
	var reports []model.Report
	if err := r.db.Where("reporter_id = ?", reporterId).
		Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询举报记录 reporter_id=%s", reporterId)
	}
	return reports, nil
}

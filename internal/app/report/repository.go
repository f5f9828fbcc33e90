package report

import "gorm.io/gorm"

type Repository interface {
	Create(r *Report) error
	List(unresolvedOnly bool) ([]*Report, error)
	Resolve(id uint64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(report *Report) error {
	return r.db.Create(report).Error
}

func (r *repository) List(unresolvedOnly bool) ([]*Report, error) {
	var reports []*Report
	query := r.db.Order("created_at DESC")
	if unresolvedOnly {
		query = query.Where("resolved = ?", false)
	}
	err := query.Find(&reports).Error
	return reports, err
}

func (r *repository) Resolve(id uint64) (int64, error) {
	result := r.db.Model(&Report{}).Where("id = ?", id).Update("resolved", true)
	return result.RowsAffected, result.Error
}

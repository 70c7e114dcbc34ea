package repositories

import (
	"context"

	"college-catalog-backend/colleges/services"
	"college-catalog-backend/db/models"

	"github.com/shopspring/decimal"
)

// BestRanksByAgency returns, per college, the best (lowest) rank per agency,
// restricted to the fixed agency allow-list.
func (r *collegeRepository) BestRanksByAgency(ctx context.Context, collegeIDs []uint) (map[uint]map[string]int, error) {
	if len(collegeIDs) == 0 {
		return map[uint]map[string]int{}, nil
	}

	type rankRow struct {
		CollegeID uint
		Agency    string
		BestRank  int
	}

	var rows []rankRow
	err := r.db.WithContext(ctx).
		Model(&models.CollegeRanking{}).
		Select("college_id, agency, MIN(rank) AS best_rank").
		Where("college_id IN ?", collegeIDs).
		Where("agency IN ?", services.RankingAgencies).
		Group("college_id, agency").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ranks := make(map[uint]map[string]int, len(collegeIDs))
	for _, row := range rows {
		if ranks[row.CollegeID] == nil {
			ranks[row.CollegeID] = make(map[string]int)
		}
		ranks[row.CollegeID][row.Agency] = row.BestRank
	}
	return ranks, nil
}

// FeeRangeByCollege aggregates min/max course fees per college.
func (r *collegeRepository) FeeRangeByCollege(ctx context.Context, collegeIDs []uint) (map[uint]services.FeeStat, error) {
	if len(collegeIDs) == 0 {
		return map[uint]services.FeeStat{}, nil
	}

	type feeRow struct {
		CollegeID uint
		MinFee    decimal.Decimal
		MaxFee    decimal.Decimal
	}

	var rows []feeRow
	err := r.db.WithContext(ctx).
		Model(&models.CollegeCourse{}).
		Select("college_id, MIN(min_fee) AS min_fee, MAX(max_fee) AS max_fee").
		Where("college_id IN ?", collegeIDs).
		Group("college_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	fees := make(map[uint]services.FeeStat, len(rows))
	for _, row := range rows {
		fees[row.CollegeID] = services.FeeStat{Min: row.MinFee, Max: row.MaxFee}
	}
	return fees, nil
}

// CourseCountByCollege counts course rows per college.
func (r *collegeRepository) CourseCountByCollege(ctx context.Context, collegeIDs []uint) (map[uint]int, error) {
	if len(collegeIDs) == 0 {
		return map[uint]int{}, nil
	}

	type countRow struct {
		CollegeID   uint
		CourseCount int
	}

	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&models.CollegeCourse{}).
		Select("college_id, COUNT(*) AS course_count").
		Where("college_id IN ?", collegeIDs).
		Group("college_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.CollegeID] = row.CourseCount
	}
	return counts, nil
}

// PlacementRangeByCollege aggregates min/max placement salaries per college
// across all recorded years.
func (r *collegeRepository) PlacementRangeByCollege(ctx context.Context, collegeIDs []uint) (map[uint]services.SalaryStat, error) {
	if len(collegeIDs) == 0 {
		return map[uint]services.SalaryStat{}, nil
	}

	type salaryRow struct {
		CollegeID uint
		MinSalary decimal.Decimal
		MaxSalary decimal.Decimal
	}

	var rows []salaryRow
	err := r.db.WithContext(ctx).
		Model(&models.CollegePlacement{}).
		Select("college_id, MIN(min_salary) AS min_salary, MAX(max_salary) AS max_salary").
		Where("college_id IN ?", collegeIDs).
		Group("college_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	salaries := make(map[uint]services.SalaryStat, len(rows))
	for _, row := range rows {
		salaries[row.CollegeID] = services.SalaryStat{Min: row.MinSalary, Max: row.MaxSalary}
	}
	return salaries, nil
}

// SpecializationCountsByCollege counts courses per specialization name per
// college.
func (r *collegeRepository) SpecializationCountsByCollege(ctx context.Context, collegeIDs []uint) (map[uint]map[string]int, error) {
	if len(collegeIDs) == 0 {
		return map[uint]map[string]int{}, nil
	}

	type specRow struct {
		CollegeID uint
		Name      string
		Count     int
	}

	var rows []specRow
	err := r.db.WithContext(ctx).
		Model(&models.CollegeCourse{}).
		Select("college_courses.college_id, specializations.name, COUNT(*) AS count").
		Joins("JOIN specializations ON specializations.id = college_courses.specialization_id AND specializations.deleted_at IS NULL").
		Where("college_courses.college_id IN ?", collegeIDs).
		Group("college_courses.college_id, specializations.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	specs := make(map[uint]map[string]int, len(rows))
	for _, row := range rows {
		if specs[row.CollegeID] == nil {
			specs[row.CollegeID] = make(map[string]int)
		}
		specs[row.CollegeID][row.Name] = row.Count
	}
	return specs, nil
}

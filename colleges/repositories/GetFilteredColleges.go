package repositories

import (
	"context"

	"college-catalog-backend/colleges/services"
	"college-catalog-backend/db/models"

	"gorm.io/gorm"
)

// collegesQueryBuilder composes the listing predicates. The same builder is
// instantiated twice per request: once for the paginated page and once for
// the unpaginated full match set, so both queries stay predicate-identical.
type collegesQueryBuilder struct {
	query    *gorm.DB
	criteria services.ListingCriteria
	feeRules []services.FeeRangeRule
}

func newCollegesQueryBuilder(db *gorm.DB, criteria services.ListingCriteria, feeRules []services.FeeRangeRule) *collegesQueryBuilder {
	return &collegesQueryBuilder{
		query:    db.Model(&models.College{}),
		criteria: criteria,
		feeRules: feeRules,
	}
}

// applyMandatoryPredicates adds the constraints every listing query carries
// regardless of caller input: the college's city must be active and the
// college must have at least one active content row.
func (cqb *collegesQueryBuilder) applyMandatoryPredicates() *collegesQueryBuilder {
	cqb.query = cqb.query.
		Joins("JOIN cities ON cities.id = colleges.city_id AND cities.is_active = true AND cities.deleted_at IS NULL").
		Joins("LEFT JOIN states ON states.id = colleges.state_id AND states.deleted_at IS NULL").
		Joins("LEFT JOIN streams ON streams.id = colleges.stream_id AND streams.deleted_at IS NULL").
		Where("EXISTS (SELECT 1 FROM college_contents cc WHERE cc.college_id = colleges.id AND cc.is_active = true AND cc.deleted_at IS NULL)")
	return cqb
}

func (cqb *collegesQueryBuilder) applyActiveFilter() *collegesQueryBuilder {
	if cqb.criteria.ActiveOnly {
		cqb.query = cqb.query.Where("colleges.is_active = true")
	}
	return cqb
}

func (cqb *collegesQueryBuilder) applyTextFilter() *collegesQueryBuilder {
	if term := services.NormalizeTerm(cqb.criteria.TextQuery); term != "" {
		cqb.query = cqb.query.Where(normalizedLike("colleges.name"), "%"+term+"%")
	}
	return cqb
}

// applyNameFilters matches city, state and stream by case- and
// punctuation-insensitive substring. Only the first element of each parsed
// comma-list is honored; the institute type matches by normalized equality.
func (cqb *collegesQueryBuilder) applyNameFilters() *collegesQueryBuilder {
	if term := services.NormalizeTerm(services.EffectiveTerm(cqb.criteria.CitySubstrings)); term != "" {
		cqb.query = cqb.query.Where(normalizedLike("cities.name"), "%"+term+"%")
	}
	if term := services.NormalizeTerm(services.EffectiveTerm(cqb.criteria.StateSubstrings)); term != "" {
		cqb.query = cqb.query.Where(normalizedLike("states.name"), "%"+term+"%")
	}
	if term := services.NormalizeTerm(services.EffectiveTerm(cqb.criteria.StreamSubstrings)); term != "" {
		cqb.query = cqb.query.Where(normalizedLike("streams.name"), "%"+term+"%")
	}
	if term := services.NormalizeTerm(services.EffectiveTerm(cqb.criteria.InstituteTypes)); term != "" {
		cqb.query = cqb.query.Where(normalizedEquals("colleges.institute_type"), term)
	}
	return cqb
}

// applyFeeRangeFilter ORs the selected rules together: a college passes when
// ANY of its course fee rows falls inside ANY selected range.
func (cqb *collegesQueryBuilder) applyFeeRangeFilter() *collegesQueryBuilder {
	rules := services.SelectFeeRangeRules(cqb.feeRules, cqb.criteria.FeeRangeNames)
	if len(rules) == 0 {
		return cqb
	}

	clause, args := feeRangePredicate(rules)
	cqb.query = cqb.query.Where(clause, args...)
	return cqb
}

// feeRangePredicate builds the SQL arm of the fee-range filter: one EXISTS
// per rule, ORed, with a bounded rule binding two values and the open-ended
// top bucket binding one.
func feeRangePredicate(rules []services.FeeRangeRule) (string, []interface{}) {
	orClause := ""
	args := make([]interface{}, 0, len(rules)*2)
	for i, rule := range rules {
		if i > 0 {
			orClause += " OR "
		}
		if rule.Max != nil {
			orClause += "EXISTS (SELECT 1 FROM college_courses fc WHERE fc.college_id = colleges.id AND fc.deleted_at IS NULL AND fc.min_fee >= ? AND fc.min_fee <= ?)"
			args = append(args, rule.Min, *rule.Max)
		} else {
			orClause += "EXISTS (SELECT 1 FROM college_courses fc WHERE fc.college_id = colleges.id AND fc.deleted_at IS NULL AND fc.min_fee >= ?)"
			args = append(args, rule.Min)
		}
	}
	return "(" + orClause + ")", args
}

func (cqb *collegesQueryBuilder) applyIDRestriction() *collegesQueryBuilder {
	if len(cqb.criteria.CollegeIDs) > 0 {
		cqb.query = cqb.query.Where("colleges.id IN ?", cqb.criteria.CollegeIDs)
	}
	return cqb
}

func (cqb *collegesQueryBuilder) applyAllFilters() *collegesQueryBuilder {
	return cqb.
		applyMandatoryPredicates().
		applyActiveFilter().
		applyTextFilter().
		applyNameFilters().
		applyFeeRangeFilter().
		applyIDRestriction()
}

func (cqb *collegesQueryBuilder) applyScoreOrder() *collegesQueryBuilder {
	cqb.query = cqb.query.Order("colleges.score DESC").Order("colleges.id ASC")
	return cqb
}

// FetchPage returns one relevance-ordered page of the filtered listing with
// the location and classification names already joined in.
func (r *collegeRepository) FetchPage(ctx context.Context, criteria services.ListingCriteria) ([]services.PageRow, error) {
	cqb := newCollegesQueryBuilder(r.db.WithContext(ctx), criteria, r.feeRules).
		applyAllFilters().
		applyScoreOrder()

	var rows []services.PageRow
	err := cqb.query.
		Select("colleges.id, colleges.name, colleges.slug, cities.name AS city, states.name AS state, streams.name AS stream, colleges.institute_type, colleges.logo_url, colleges.score").
		Offset(criteria.Offset()).
		Limit(criteria.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchFullMatchSet returns the complete unpaginated match set as light
// facet rows. Used only for counting and faceting.
func (r *collegeRepository) FetchFullMatchSet(ctx context.Context, criteria services.ListingCriteria) ([]services.FacetRow, error) {
	cqb := newCollegesQueryBuilder(r.db.WithContext(ctx), criteria, r.feeRules).applyAllFilters()

	var rows []services.FacetRow
	err := cqb.query.
		Select("colleges.id, cities.name AS city, states.name AS state, streams.name AS stream, colleges.institute_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ResolveStreamColleges maps a stream classification ID to the distinct set
// of college IDs offering a course in any of that stream's specializations.
func (r *collegeRepository) ResolveStreamColleges(ctx context.Context, streamID uint) ([]uint, error) {
	var collegeIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.CollegeCourse{}).
		Joins("JOIN specializations s ON s.id = college_courses.specialization_id AND s.deleted_at IS NULL").
		Where("s.stream_id = ?", streamID).
		Group("college_courses.college_id").
		Pluck("college_courses.college_id", &collegeIDs).Error
	if err != nil {
		return nil, err
	}
	return collegeIDs, nil
}

func normalizedLike(column string) string {
	return "LOWER(REGEXP_REPLACE(" + column + ", '[^a-zA-Z0-9]', '', 'g')) LIKE ?"
}

func normalizedEquals(column string) string {
	return "LOWER(REGEXP_REPLACE(" + column + ", '[^a-zA-Z0-9]', '', 'g')) = ?"
}

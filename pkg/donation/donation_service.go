package donation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
	"FreshKeep/internal/utils/storage"
	"FreshKeep/pkg/expiry"
	"FreshKeep/pkg/query"

	"github.com/google/uuid"
)

// DefaultSubmitDelay mimics the round trip of a real listing submission.
const DefaultSubmitDelay = 1500 * time.Millisecond

type (
	DonationService interface {
		CreateDonation(ctx context.Context, req domain.DonationRequest) (domain.DonationResponse, error)
		UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest) (domain.DonationResponse, error)
		GetDonations(ctx context.Context, q domain.DonationQuery) (domain.DonationListResponse, error)
		GetDonationByID(ctx context.Context, id string) (domain.DonationResponse, error)
		ClaimDonation(ctx context.Context, id string, req domain.ClaimDonationRequest) (domain.DonationResponse, error)
		UpdateDonationStatus(ctx context.Context, id string, req domain.UpdateDonationStatusRequest) (domain.DonationResponse, error)
		UploadDonationImage(ctx context.Context, req domain.UploadDonationImageRequest) (domain.DonationResponse, error)
		GetDonationStatistics(ctx context.Context) (domain.DonationStatistics, error)
	}

	donationService struct {
		donationRepository DonationRepository
		s3                 storage.AwsS3
		submitDelay        time.Duration
		now                func() time.Time
	}
)

var (
	searchFields = []query.Field[entities.Donation]{
		func(d entities.Donation) string { return d.Title },
		func(d entities.Donation) string { return d.Description },
		func(d entities.Donation) string { return d.Location.Address },
	}
	byStatus  query.Field[entities.Donation] = func(d entities.Donation) string { return d.Status }
	accessors                                = query.Accessors[entities.Donation]{
		Name:   func(d entities.Donation) string { return d.Title },
		Expiry: func(d entities.Donation) time.Time { return d.AvailableUntil },
	}
)

func NewDonationService(donationRepository DonationRepository, s3 storage.AwsS3, submitDelay time.Duration, now func() time.Time) DonationService {
	if now == nil {
		now = time.Now
	}
	if submitDelay < 0 {
		submitDelay = 0
	}
	return &donationService{
		donationRepository: donationRepository,
		s3:                 s3,
		submitDelay:        submitDelay,
		now:                now,
	}
}

func (s *donationService) CreateDonation(ctx context.Context, req domain.DonationRequest) (domain.DonationResponse, error) {
	now := s.now()

	if !domain.IsDonationCategory(req.Category) {
		return domain.DonationResponse{}, domain.ErrInvalidDonationCategory
	}
	if req.Quantity.Value <= 0 {
		return domain.DonationResponse{}, domain.ErrInvalidQuantity
	}
	address := strings.TrimSpace(req.Location.Address)
	if address == "" {
		return domain.DonationResponse{}, domain.ErrMissingAddress
	}

	from := now
	if req.AvailableFrom != "" {
		t, err := domain.ParseDate(req.AvailableFrom, now.Location())
		if err != nil {
			return domain.DonationResponse{}, err
		}
		from = t
	}
	until, err := domain.ParseDate(req.AvailableUntil, now.Location())
	if err != nil {
		return domain.DonationResponse{}, err
	}
	if until.Before(from) {
		return domain.DonationResponse{}, domain.ErrInvalidAvailability
	}

	donorID := strings.TrimSpace(req.DonorID)
	if donorID == "" {
		donorID = domain.DefaultDonorID
	}

	d := entities.Donation{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Quantity:    req.Quantity,
		Category:    req.Category,
		Location: entities.DonationLocation{
			Address:     address,
			Coordinates: req.Location.Coordinates,
		},
		Temperature:     req.Temperature,
		AvailableFrom:   from,
		AvailableUntil:  until,
		DonorID:         donorID,
		PackagingInfo:   strings.TrimSpace(req.PackagingInfo),
		Allergens:       req.Allergens,
		DietaryInfo:     req.DietaryInfo,
		SafetyChecklist: req.SafetyChecklist,
		Images:          req.Images,
	}

	if err := s.wait(ctx); err != nil {
		return domain.DonationResponse{}, err
	}

	created, err := s.donationRepository.Add(ctx, d)
	if err != nil {
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(created, s.now()), nil
}

// wait holds the submission for submitDelay unless ctx ends first.
func (s *donationService) wait(ctx context.Context) error {
	if s.submitDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.submitDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *donationService) UpdateDonation(ctx context.Context, id string, req domain.UpdateDonationRequest) (domain.DonationResponse, error) {
	loc := s.now().Location()
	patch := domain.DonationPatch{
		Title:           trimmed(req.Title),
		Description:     req.Description,
		Temperature:     req.Temperature,
		PackagingInfo:   req.PackagingInfo,
		Allergens:       req.Allergens,
		DietaryInfo:     req.DietaryInfo,
		SafetyChecklist: req.SafetyChecklist,
	}

	if patch.Title != nil && *patch.Title == "" {
		return domain.DonationResponse{}, domain.ErrInvalidName
	}
	if req.Category != nil {
		if !domain.IsDonationCategory(*req.Category) {
			return domain.DonationResponse{}, domain.ErrInvalidDonationCategory
		}
		patch.Category = req.Category
	}
	if req.Quantity != nil {
		if req.Quantity.Value <= 0 {
			return domain.DonationResponse{}, domain.ErrInvalidQuantity
		}
		patch.SetQuantity(req.Quantity.Value, req.Quantity.Unit)
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return domain.DonationResponse{}, domain.ErrMissingAddress
		}
		patch.Address = &address
	}
	patch.Coordinates = req.Coordinates
	if req.AvailableFrom != nil {
		t, err := domain.ParseDate(*req.AvailableFrom, loc)
		if err != nil {
			return domain.DonationResponse{}, err
		}
		patch.AvailableFrom = &t
	}
	if req.AvailableUntil != nil {
		t, err := domain.ParseDate(*req.AvailableUntil, loc)
		if err != nil {
			return domain.DonationResponse{}, err
		}
		patch.AvailableUntil = &t
	}

	updated, err := s.donationRepository.Update(ctx, id, patch)
	if err != nil {
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(updated, s.now()), nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func (s *donationService) GetDonations(ctx context.Context, q domain.DonationQuery) (domain.DonationListResponse, error) {
	sortKey, ok := query.ParseSortKey(q.Sort)
	if !ok {
		return domain.DonationListResponse{}, domain.ErrInvalidSortKey
	}
	if !query.IsAll(q.Status) && !domain.IsDonationStatus(q.Status) {
		return domain.DonationListResponse{}, domain.ErrInvalidDonationStatus
	}

	donations := query.Filter(s.donationRepository.List(ctx), q.Search, searchFields, q.Status, byStatus)
	donations = query.Sort(donations, sortKey, accessors)

	now := s.now()
	res := domain.DonationListResponse{
		Total:     len(donations),
		Donations: make([]domain.DonationResponse, 0, len(donations)),
	}
	for _, d := range donations {
		res.Donations = append(res.Donations, toDonationResponse(d, now))
	}
	return res, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, id string) (domain.DonationResponse, error) {
	d, err := s.donationRepository.Get(ctx, id)
	if err != nil {
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(d, s.now()), nil
}

func (s *donationService) ClaimDonation(ctx context.Context, id string, req domain.ClaimDonationRequest) (domain.DonationResponse, error) {
	d, err := s.donationRepository.Claim(ctx, id, req.ClaimantID)
	if err != nil {
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(d, s.now()), nil
}

func (s *donationService) UpdateDonationStatus(ctx context.Context, id string, req domain.UpdateDonationStatusRequest) (domain.DonationResponse, error) {
	d, err := s.donationRepository.Transition(ctx, id, req.Status)
	if err != nil {
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(d, s.now()), nil
}

// UploadDonationImage appends a photo to the listing's gallery.
func (s *donationService) UploadDonationImage(ctx context.Context, req domain.UploadDonationImageRequest) (domain.DonationResponse, error) {
	if s.s3 == nil {
		return domain.DonationResponse{}, domain.ErrStorageUnavailable
	}

	d, err := s.donationRepository.Get(ctx, req.DonationID)
	if err != nil {
		return domain.DonationResponse{}, err
	}

	fileName := fmt.Sprintf("donation-%s-%s", d.ID, uuid.NewString())
	objectKey, err := s.s3.UploadFile(ctx, fileName, req.Image, "donations", storage.AllowImage...)
	if err != nil {
		return domain.DonationResponse{}, err
	}

	updated, err := s.donationRepository.AppendImage(ctx, d.ID, s.s3.GetPublicLinkKey(objectKey))
	if err != nil {
		_ = s.s3.DeleteFile(ctx, objectKey)
		return domain.DonationResponse{}, err
	}
	return toDonationResponse(updated, s.now()), nil
}

func (s *donationService) GetDonationStatistics(ctx context.Context) (domain.DonationStatistics, error) {
	donations := s.donationRepository.List(ctx)

	stats := domain.DonationStatistics{
		TotalDonations: len(donations),
		ByStatus: map[string]int{
			domain.StatusAvailable: 0,
			domain.StatusClaimed:   0,
			domain.StatusInTransit: 0,
			domain.StatusDelivered: 0,
			domain.StatusCanceled:  0,
		},
	}
	for _, d := range donations {
		stats.ByStatus[d.Status]++
		if d.Status == domain.StatusDelivered {
			stats.DeliveredQuantity += d.Quantity.Value
		}
	}

	stats.EstimatedMealsServed = domain.EstimateMealCount(stats.DeliveredQuantity)
	stats.EstimatedCO2Reduced = domain.EstimateCO2Savings(stats.DeliveredQuantity)
	stats.EstimatedImpact = fmt.Sprintf("You've helped provide approximately %d meals to those in need.", stats.EstimatedMealsServed)
	return stats, nil
}

func toDonationResponse(d entities.Donation, now time.Time) domain.DonationResponse {
	return domain.DonationResponse{
		Donation:              d,
		CategoryLabel:         domain.CategoryLabel(d.Category),
		StatusLabel:           domain.StatusLabel(d.Status),
		ShortAddress:          expiry.ShortAddress(d.Location.Address),
		Tier:                  string(expiry.WindowTier(d.AvailableUntil, now)),
		TimeRemaining:         expiry.RemainingLabel(d.AvailableUntil, now),
		IsUrgent:              expiry.IsUrgent(d.AvailableUntil, now),
		Progress:              expiry.ProgressFraction(now, d.AvailableFrom, d.AvailableUntil),
		PickupWindow:          expiry.FormatPickupWindow(d.AvailableFrom, d.AvailableUntil),
		AvailableUntilText:    expiry.FormatDate(d.AvailableUntil),
		AllSafetyChecksPassed: d.SafetyChecklist != nil && d.SafetyChecklist.AllPassed(),
		Claimable:             d.Status == domain.StatusAvailable && d.AvailableUntil.After(now),
		EstimatedMeals:        domain.EstimateMealCount(d.Quantity.Value),
		EstimatedCO2Saved:     domain.EstimateCO2Savings(d.Quantity.Value),
	}
}

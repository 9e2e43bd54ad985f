package food

import (
	"context"
	"fmt"
	"strings"
	"time"

	"FreshKeep/domain"
	"FreshKeep/entities"
	"FreshKeep/internal/utils/storage"
	"FreshKeep/pkg/expiry"
	"FreshKeep/pkg/notify"
	"FreshKeep/pkg/query"

	"github.com/google/uuid"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItems(ctx context.Context, q domain.FoodItemQuery) (domain.FoodItemListResponse, error)
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error)
		GetCategories() []string
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		now            func() time.Time
	}
)

var (
	searchFields = []query.Field[entities.FoodItem]{
		func(f entities.FoodItem) string { return f.Name },
		func(f entities.FoodItem) string { return f.Notes },
	}
	byCategory query.Field[entities.FoodItem] = func(f entities.FoodItem) string { return f.Category }
	accessors                                = query.Accessors[entities.FoodItem]{
		Name:   func(f entities.FoodItem) string { return f.Name },
		Expiry: func(f entities.FoodItem) time.Time { return f.ExpiryDate },
	}
)

// NewFoodService wires the inventory display service. s3 may be nil, in
// which case image uploads fail with domain.ErrStorageUnavailable. now
// defaults to time.Now.
func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3, now func() time.Time) FoodService {
	if now == nil {
		now = time.Now
	}
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		now:            now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	now := s.now()
	loc := now.Location()

	expiryDate, err := domain.ParseDate(req.ExpiryDate, loc)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	purchaseDate := civilMidnight(now)
	if req.PurchaseDate != "" {
		purchaseDate, err = domain.ParseDate(req.PurchaseDate, loc)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
	}
	if expiryDate.Before(purchaseDate) {
		return domain.FoodItemResponse{}, domain.ErrExpiryBeforeBought
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = domain.DefaultFoodCategory
	}
	if !domain.IsFoodCategory(category) {
		return domain.FoodItemResponse{}, domain.ErrInvalidCategory
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = domain.DefaultFoodUnit
	}

	item := entities.FoodItem{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Category:     category,
		PurchaseDate: purchaseDate,
		ExpiryDate:   expiryDate,
		Quantity:     quantity,
		Unit:         unit,
		Notes:        strings.TrimSpace(req.Notes),
		ImageURL:     req.ImageURL,
	}

	id, err := s.foodRepository.Add(ctx, item)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	item.ID = id

	return toFoodItemResponse(item, now), nil
}

// UpdateFoodItem applies the set fields. The repository rejects a result
// whose expiry precedes its purchase date.
func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	now := s.now()
	patch, err := buildPatch(req, now.Location())
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	updated, err := s.foodRepository.Update(ctx, id, patch)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(updated, now), nil
}

func buildPatch(req domain.UpdateFoodItemRequest, loc *time.Location) (domain.FoodItemPatch, error) {
	patch := domain.FoodItemPatch{
		Unit:     req.Unit,
		Notes:    req.Notes,
		ImageURL: req.ImageURL,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return patch, domain.ErrInvalidName
		}
		patch.Name = &name
	}
	if req.Category != nil {
		if !domain.IsFoodCategory(*req.Category) {
			return patch, domain.ErrInvalidCategory
		}
		patch.Category = req.Category
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return patch, domain.ErrInvalidQuantity
		}
		patch.Quantity = req.Quantity
	}
	if req.PurchaseDate != nil {
		t, err := domain.ParseDate(*req.PurchaseDate, loc)
		if err != nil {
			return patch, err
		}
		patch.PurchaseDate = &t
	}
	if req.ExpiryDate != nil {
		t, err := domain.ParseDate(*req.ExpiryDate, loc)
		if err != nil {
			return patch, domain.ErrInvalidExpiryDate
		}
		patch.ExpiryDate = &t
	}
	return patch, nil
}

// DeleteFoodItem removes the item and, best effort, its uploaded image.
func (s *foodService) DeleteFoodItem(ctx context.Context, id string) error {
	item, err := s.foodRepository.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.foodRepository.Remove(ctx, id); err != nil {
		return err
	}

	if s.s3 != nil && item.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(ctx, objectKey)
		}
	}
	return nil
}

func (s *foodService) GetFoodItems(ctx context.Context, q domain.FoodItemQuery) (domain.FoodItemListResponse, error) {
	sortKey, ok := query.ParseSortKey(q.Sort)
	if !ok {
		return domain.FoodItemListResponse{}, domain.ErrInvalidSortKey
	}
	if sortKey == query.SortNone {
		sortKey = query.SortExpiryAsc
	}

	items := query.Filter(s.foodRepository.List(ctx), q.Search, searchFields, q.Category, byCategory)
	items = query.Sort(items, sortKey, accessors)

	now := s.now()
	res := domain.FoodItemListResponse{
		Total: len(items),
		Items: make([]domain.FoodItemResponse, 0, len(items)),
	}
	for _, it := range items {
		res.Items = append(res.Items, toFoodItemResponse(it, now))
	}

	if q.Group {
		for _, g := range query.GroupBy(items, byCategory) {
			group := domain.FoodCategoryGroup{Category: g.Key}
			for _, it := range g.Records {
				group.Items = append(group.Items, toFoodItemResponse(it, now))
			}
			res.Groups = append(res.Groups, group)
		}
	}
	return res, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error) {
	item, err := s.foodRepository.Get(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(item, s.now()), nil
}

func (s *foodService) GetCategories() []string {
	return append([]string(nil), domain.FoodCategories...)
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error) {
	if s.s3 == nil {
		return domain.FoodItemResponse{}, domain.ErrStorageUnavailable
	}

	item, err := s.foodRepository.Get(ctx, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	var objectKey string
	var uploadErr error
	if existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL); existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(ctx, existingKey, req.Image, storage.AllowImage...)
	} else {
		fileName := fmt.Sprintf("food-%s", item.ID)
		objectKey, uploadErr = s.s3.UploadFile(ctx, fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.FoodItemResponse{}, uploadErr
	}

	imageURL := s.s3.GetPublicLinkKey(objectKey)
	updated, err := s.foodRepository.Update(ctx, item.ID, domain.FoodItemPatch{ImageURL: &imageURL})
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(updated, s.now()), nil
}

func (s *foodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	now := s.now()
	items := s.foodRepository.List(ctx)

	stats := domain.DashboardStatsResponse{TotalItems: len(items)}
	for _, it := range items {
		switch expiry.ClassifyDate(it.ExpiryDate, now, expiry.InventoryThresholds) {
		case expiry.TierSafe:
			stats.SafeItems++
		case expiry.TierWarning:
			stats.WarningItems++
		case expiry.TierCritical:
			stats.CriticalItems++
		case expiry.TierExpired:
			stats.ExpiredItems++
		default:
			stats.UnknownItems++
		}
		if expiry.ExpiresToday(it.ExpiryDate, now) {
			stats.ExpiringToday++
		}
	}
	if notice, ok := notify.ExpiringTodayNotice(stats.ExpiringToday); ok {
		stats.ExpiringNotice = notice.Description
	}
	return stats, nil
}

func toFoodItemResponse(item entities.FoodItem, now time.Time) domain.FoodItemResponse {
	badge := expiry.Badge(item.ExpiryDate, now, expiry.BadgeThresholds)

	res := domain.FoodItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Category:      item.Category,
		PurchaseDate:  item.PurchaseDate,
		ExpiryDate:    item.ExpiryDate,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		Notes:         item.Notes,
		ImageURL:      item.ImageURL,
		Initial:       expiry.Initial(item.Name),
		Tier:          string(expiry.ClassifyDate(item.ExpiryDate, now, expiry.InventoryThresholds)),
		Badge:         domain.ExpiryBadge{Tier: string(badge.Tier), Text: badge.Text},
		Progress:      expiry.ProgressFraction(now, item.PurchaseDate, item.ExpiryDate),
		ExpiresToday:  expiry.ExpiresToday(item.ExpiryDate, now),
		PurchasedText: expiry.FormatDate(item.PurchaseDate),
		ExpiresText:   expiry.FormatDate(item.ExpiryDate),
	}
	if !item.ExpiryDate.IsZero() {
		res.DaysLeft = expiry.DaysUntil(item.ExpiryDate, now)
	}
	return res
}

func civilMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

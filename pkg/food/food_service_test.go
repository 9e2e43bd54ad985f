package food

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"FreshKeep/domain"
	"FreshKeep/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 4, 27, 10, 0, 0, 0, time.UTC)

type fakeS3 struct {
	uploads []string
	deleted []string
}

func (f *fakeS3) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".jpg"
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeS3) UpdateFile(_ context.Context, objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	f.uploads = append(f.uploads, objectKey)
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.test/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	const prefix = "https://bucket.test/"
	if len(link) > len(prefix) && link[:len(prefix)] == prefix {
		return link[len(prefix):]
	}
	return ""
}

func newService(t *testing.T, s3 *fakeS3) FoodService {
	t.Helper()
	repo := NewFoodRepository(context.Background(), storage.NewMemoryStore(), testKey, nil, testClock)
	if s3 == nil {
		return NewFoodService(repo, nil, func() time.Time { return fixedNow })
	}
	return NewFoodService(repo, s3, func() time.Time { return fixedNow })
}

func names(items []domain.FoodItemResponse) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestFoodService_ListDefaultsToSoonestExpiry(t *testing.T) {
	svc := newService(t, nil)

	res, err := svc.GetFoodItems(context.Background(), domain.FoodItemQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, []string{"Tomatoes", "Spinach", "Milk", "Chicken Breast", "Cheddar Cheese"}, names(res.Items))
	assert.Nil(t, res.Groups)
}

func TestFoodService_ListDerivesDisplayFields(t *testing.T) {
	svc := newService(t, nil)

	res, err := svc.GetFoodItems(context.Background(), domain.FoodItemQuery{})
	require.NoError(t, err)

	tomatoes := res.Items[0]
	assert.Equal(t, "critical", tomatoes.Tier)
	assert.Equal(t, 0, tomatoes.DaysLeft)
	assert.True(t, tomatoes.ExpiresToday)
	assert.Equal(t, domain.ExpiryBadge{Tier: "critical", Text: "Today"}, tomatoes.Badge)
	assert.Equal(t, 1.0, tomatoes.Progress)
	assert.Equal(t, "T", tomatoes.Initial)
	assert.Equal(t, "Apr 27, 2025", tomatoes.ExpiresText)

	milk := res.Items[2]
	assert.Equal(t, "warning", milk.Tier)
	assert.Equal(t, 4, milk.DaysLeft)
	assert.Equal(t, "4 days", milk.Badge.Text)
	assert.Equal(t, "Apr 24, 2025", milk.PurchasedText)

	cheese := res.Items[4]
	assert.Equal(t, "safe", cheese.Tier)
	assert.Equal(t, domain.ExpiryBadge{Tier: "safe", Text: "18 days"}, cheese.Badge)
}

func TestFoodService_ListFiltersSortsAndGroups(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	res, err := svc.GetFoodItems(ctx, domain.FoodItemQuery{Category: "Dairy", Sort: "name_asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cheddar Cheese", "Milk"}, names(res.Items))

	res, err = svc.GetFoodItems(ctx, domain.FoodItemQuery{Search: "free"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chicken Breast"}, names(res.Items), "notes are searchable")

	res, err = svc.GetFoodItems(ctx, domain.FoodItemQuery{Group: true})
	require.NoError(t, err)
	require.Len(t, res.Groups, 3)
	assert.Equal(t, "Vegetables", res.Groups[0].Category)
	assert.Equal(t, []string{"Tomatoes", "Spinach"}, names(res.Groups[0].Items))
	assert.Equal(t, "Dairy", res.Groups[1].Category)
	assert.Equal(t, []string{"Milk", "Cheddar Cheese"}, names(res.Groups[1].Items))
	assert.Equal(t, "Meat", res.Groups[2].Category)

	_, err = svc.GetFoodItems(ctx, domain.FoodItemQuery{Sort: "price"})
	assert.ErrorIs(t, err, domain.ErrInvalidSortKey)
}

func TestFoodService_AddAppliesDefaults(t *testing.T) {
	svc := newService(t, nil)

	res, err := svc.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "  Bagels ",
		ExpiryDate: "2025-05-02",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "Bagels", res.Name)
	assert.Equal(t, domain.DefaultFoodCategory, res.Category)
	assert.Equal(t, domain.DefaultFoodUnit, res.Unit)
	assert.Equal(t, 1.0, res.Quantity)
	assert.True(t, res.PurchaseDate.Equal(time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, res.DaysLeft)
	assert.Equal(t, "warning", res.Tier)
}

func TestFoodService_AddRejectsBadInput(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "x", ExpiryDate: "soon"})
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)

	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "x", ExpiryDate: "2025-05-01", Category: "Toys"})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = svc.AddFoodItem(ctx, domain.AddFoodItemRequest{Name: "x", ExpiryDate: "2025-04-20", PurchaseDate: "2025-04-25"})
	assert.ErrorIs(t, err, domain.ErrExpiryBeforeBought)

	res, err := svc.GetFoodItems(ctx, domain.FoodItemQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, res.Total)
}

func TestFoodService_Update(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	exp := "2025-05-20"
	res, err := svc.UpdateFoodItem(ctx, "2", domain.UpdateFoodItemRequest{ExpiryDate: &exp})
	require.NoError(t, err)
	assert.Equal(t, "safe", res.Tier)
	assert.Equal(t, "Spinach", res.Name)

	blank := "  "
	_, err = svc.UpdateFoodItem(ctx, "2", domain.UpdateFoodItemRequest{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	early := "2025-01-01"
	_, err = svc.UpdateFoodItem(ctx, "2", domain.UpdateFoodItemRequest{ExpiryDate: &early})
	assert.ErrorIs(t, err, domain.ErrExpiryBeforeBought)

	_, err = svc.UpdateFoodItem(ctx, "missing", domain.UpdateFoodItemRequest{})
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestFoodService_DeleteCleansUpOwnImage(t *testing.T) {
	s3 := &fakeS3{}
	svc := newService(t, s3)
	ctx := context.Background()

	img := "https://bucket.test/food-items/food-1.jpg"
	_, err := svc.UpdateFoodItem(ctx, "1", domain.UpdateFoodItemRequest{ImageURL: &img})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFoodItem(ctx, "1"))
	require.NoError(t, svc.DeleteFoodItem(ctx, "2"))
	assert.Equal(t, []string{"food-items/food-1.jpg"}, s3.deleted, "unsplash links are not ours to delete")

	_, err = svc.GetFoodItemByID(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestFoodService_UploadFoodImage(t *testing.T) {
	ctx := context.Background()

	_, err := newService(t, nil).UploadFoodImage(ctx, domain.UploadFoodImageRequest{FoodItemID: "1"})
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	s3 := &fakeS3{}
	svc := newService(t, s3)
	res, err := svc.UploadFoodImage(ctx, domain.UploadFoodImageRequest{FoodItemID: "4"})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.test/food-items/food-4.jpg", res.ImageURL)

	res, err = svc.UploadFoodImage(ctx, domain.UploadFoodImageRequest{FoodItemID: "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"food-items/food-4.jpg", "food-items/food-4.jpg"}, s3.uploads)
	assert.Equal(t, "https://bucket.test/food-items/food-4.jpg", res.ImageURL)

	_, err = svc.UploadFoodImage(ctx, domain.UploadFoodImageRequest{FoodItemID: "missing"})
	assert.ErrorIs(t, err, domain.ErrFoodItemNotFound)
}

func TestFoodService_DashboardStats(t *testing.T) {
	svc := newService(t, nil)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStatsResponse{
		TotalItems:     5,
		SafeItems:      2,
		WarningItems:   1,
		CriticalItems:  2,
		ExpiringToday:  1,
		ExpiringNotice: "1 item in your inventory expires today.",
	}, stats)
}

func TestFoodService_Categories(t *testing.T) {
	cats := newService(t, nil).GetCategories()
	assert.Equal(t, domain.FoodCategories, cats)
	cats[0] = "changed"
	assert.Equal(t, "Fruits", domain.FoodCategories[0])
}

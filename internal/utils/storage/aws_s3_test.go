package storage

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"testing"

	"FreshKeep/domain"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	puts    map[string][]byte
	deletes []string
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = make(map[string][]byte)
	}
	f.puts[aws.ToString(in.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestAwsS3_UploadAndLinks(t *testing.T) {
	client := &fakeClient{}
	s := NewAwsS3WithClient(client, "freshkeep", "ap-southeast-1")
	ctx := context.Background()

	key, err := s.UploadFile(ctx, "milk", fileHeader(t, "Milk.PNG", []byte("png")), "food-items", AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "food-items/milk.png", key)
	assert.Equal(t, []byte("png"), client.puts[key])

	link := s.GetPublicLinkKey(key)
	assert.Equal(t, "https://freshkeep.s3.ap-southeast-1.amazonaws.com/food-items/milk.png", link)
	assert.Equal(t, key, s.GetObjectKeyFromLink(link))
	assert.Equal(t, "", s.GetObjectKeyFromLink("https://images.unsplash.com/photo.jpg"))
}

func TestAwsS3_RejectsDisallowedExtension(t *testing.T) {
	client := &fakeClient{}
	s := NewAwsS3WithClient(client, "freshkeep", "ap-southeast-1")

	_, err := s.UploadFile(context.Background(), "milk", fileHeader(t, "milk.exe", []byte("x")), "food-items", AllowImage...)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
	assert.Empty(t, client.puts)
}

func TestAwsS3_UpdateSwitchesExtension(t *testing.T) {
	client := &fakeClient{}
	s := NewAwsS3WithClient(client, "freshkeep", "ap-southeast-1")

	key, err := s.UpdateFile(context.Background(), "food-items/milk.png", fileHeader(t, "milk.jpg", []byte("jpg")), AllowImage...)
	require.NoError(t, err)
	assert.Equal(t, "food-items/milk.jpg", key)
	assert.Equal(t, []string{"food-items/milk.png"}, client.deletes)
}

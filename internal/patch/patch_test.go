package patch

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickload-admin/internal/models"
)

// ==========================
// Compute
// ==========================

func TestCompute_OnlyChangedFields(t *testing.T) {
	original := models.Product{
		ID:              "p1",
		ProductType:     models.ProductTypeBricks,
		ProductPrice:    4500,
		ProductQuantity: 10,
		ProductDetails:  "Red clay",
		ProductImage:    "uploads/p1.png",
		IsVerified:      false,
	}
	edited := original
	edited.ProductPrice = 4800
	edited.ProductDetails = "Red clay, kiln fired"

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.Equal(t, Patch{
		"productPrice":   "4800",
		"productDetails": "Red clay, kiln fired",
	}, p)
}

func TestCompute_NoChangesIsEmpty(t *testing.T) {
	owner := models.ProductOwner{ID: "o1", ProductOwnerName: "Shree Traders", ProductType: []models.ProductType{"Grit"}}

	p, err := Compute(owner, owner)

	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestCompute_StringAndNumberCompareEqual(t *testing.T) {
	original := models.Product{ProductPrice: 4500, ProductQuantity: 3}
	edited := map[string]interface{}{
		"productPrice":    "4500",
		"productQuantity": "4",
	}

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.Equal(t, Patch{"productQuantity": "4"}, p)
}

func TestCompute_NumericStringMatchesStoredNumber(t *testing.T) {
	original := models.Product{ProductPrice: 4500, ProductRating: 4.5}
	edited := map[string]interface{}{
		"productPrice":  "4500.00",
		"productRating": "4.50",
	}

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.True(t, p.IsEmpty(), "unexpected patch %v", p)
}

func TestCompute_NumericLookingStringsCompareAsText(t *testing.T) {
	original := map[string]interface{}{"phoneNumber": "09876543210", "isVerified": true}
	edited := map[string]interface{}{"phoneNumber": "9876543210", "isVerified": "1"}

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.Equal(t, Patch{"phoneNumber": "9876543210", "isVerified": "1"}, p)
}

func TestCompute_ArrayFieldsExpandToIndexedKeys(t *testing.T) {
	original := models.ProductOwner{ProductType: []models.ProductType{"Grit"}}
	edited := models.ProductOwner{ProductType: []models.ProductType{"Grit", "Cement"}}

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.Equal(t, Patch{"productType[0]": "Grit", "productType[1]": "Cement"}, p)
	assert.True(t, p.Changed("productType"))
	assert.False(t, p.Changed("city"))
}

func TestCompute_SkipsReadOnlyAndFileFields(t *testing.T) {
	original := map[string]interface{}{"_id": "u1", "panCard": "a.png", "city": "Pune"}
	edited := map[string]interface{}{"_id": "u2", "panCard": "b.png", "city": "Pune", "updatedAt": "now"}

	p, err := Compute(original, edited)

	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestCompute_RejectsNonObjects(t *testing.T) {
	_, err := Compute([]string{"a"}, map[string]interface{}{})
	assert.Error(t, err)
}

func TestPatch_FieldsOrderedByIndex(t *testing.T) {
	p := Patch{"productType[10]": "k", "productType[2]": "c", "city": "Pune", "productType[0]": "a"}

	assert.Equal(t, []string{"city", "productType[0]", "productType[2]", "productType[10]"}, p.Fields())
}

func TestPatch_Set(t *testing.T) {
	p := Patch{}.Set("isVerified", true).Set("productRating", 4.5)

	assert.Equal(t, Patch{"isVerified": "true", "productRating": "4.5"}, p)
}

// ==========================
// Form Encoding
// ==========================

func readParts(t *testing.T, body io.Reader, contentType string) (map[string]string, map[string][]byte) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	files := map[string][]byte{}
	r := multipart.NewReader(body, params["boundary"])
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()] = data
		} else {
			fields[part.FormName()] = string(data)
		}
	}
	return fields, files
}

func TestForm_Encode(t *testing.T) {
	form := NewForm(Patch{"productType[0]": "Grit", "city": "Nashik"})
	require.NoError(t, form.Attach(File{Field: FieldShopImage, Filename: "/tmp/shop.jpg", ContentType: "image/jpeg", Content: []byte("jpeg")}))

	body, contentType, err := form.Encode()
	require.NoError(t, err)

	fields, files := readParts(t, body, contentType)
	assert.Equal(t, map[string]string{"productType[0]": "Grit", "city": "Nashik"}, fields)
	assert.Equal(t, []byte("jpeg"), files[FieldShopImage])
}

func TestForm_Attach(t *testing.T) {
	form := NewForm(nil)
	assert.True(t, form.IsEmpty())

	err := form.Attach(File{Field: "avatar", Content: []byte("x")})
	assert.Error(t, err)

	err = form.Attach(File{Field: FieldRC})
	assert.Error(t, err)

	require.NoError(t, form.Attach(File{Field: FieldRC, Content: []byte("v1")}))
	require.NoError(t, form.Attach(File{Field: FieldRC, Content: []byte("v2")}))
	require.Len(t, form.Files, 1)
	assert.Equal(t, []byte("v2"), form.Files[0].Content)
	assert.False(t, form.IsEmpty())
}

func TestIsFileField(t *testing.T) {
	for _, name := range []string{"shopImage", "productImage", "aadharCard", "panCard", "vehicleImage", "rc", "drivingLicence"} {
		assert.True(t, IsFileField(name), name)
	}
	assert.False(t, IsFileField("productDetails"))
}

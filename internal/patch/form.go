package patch

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
)

// Designated upload field names. Any selected file travels under one of these.
const (
	FieldShopImage      = "shopImage"
	FieldProductImage   = "productImage"
	FieldAadharCard     = "aadharCard"
	FieldPanCard        = "panCard"
	FieldVehicleImage   = "vehicleImage"
	FieldRC             = "rc"
	FieldDrivingLicence = "drivingLicence"
)

var fileFields = map[string]bool{
	FieldShopImage:      true,
	FieldProductImage:   true,
	FieldAadharCard:     true,
	FieldPanCard:        true,
	FieldVehicleImage:   true,
	FieldRC:             true,
	FieldDrivingLicence: true,
}

// IsFileField reports whether name is a designated upload field.
func IsFileField(name string) bool {
	return fileFields[name]
}

// File is one pending upload.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// Form is a diff-only update: changed fields plus any selected files.
type Form struct {
	Fields Patch
	Files  []File
}

func NewForm(fields Patch) *Form {
	if fields == nil {
		fields = Patch{}
	}
	return &Form{Fields: fields}
}

// Attach adds a file under a designated field, replacing any earlier
// selection for the same field.
func (f *Form) Attach(file File) error {
	if !IsFileField(file.Field) {
		return fmt.Errorf("field %q does not accept files", file.Field)
	}
	if len(file.Content) == 0 {
		return fmt.Errorf("file for %q is empty", file.Field)
	}
	for i := range f.Files {
		if f.Files[i].Field == file.Field {
			f.Files[i] = file
			return nil
		}
	}
	f.Files = append(f.Files, file)
	return nil
}

func (f *Form) IsEmpty() bool {
	return f.Fields.IsEmpty() && len(f.Files) == 0
}

// Encode renders the form as multipart/form-data. Unchanged fields are
// never present because they never enter the Patch.
func (f *Form) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, name := range f.Fields.Fields() {
		if err := w.WriteField(name, f.Fields[name]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", name, err)
		}
	}

	for _, file := range f.Files {
		part, err := w.CreatePart(fileHeader(file))
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", file.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func fileHeader(file File) textproto.MIMEHeader {
	name := file.Filename
	if name == "" {
		name = file.Field
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(filepath.Base(name))))
	h.Set("Content-Type", contentType)
	return h
}

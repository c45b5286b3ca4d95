package joplin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ResourceProperties are the writable resource (attachment) fields.
// Title defaults to the uploaded filename when unset.
type ResourceProperties struct {
	ID       *string `json:"id,omitempty"`
	Title    *string `json:"title,omitempty"`
	Filename *string `json:"filename,omitempty"`
	UserData *string `json:"user_data,omitempty"`
}

func (p *ResourceProperties) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.ID, validation.By(validateOptionalItemID)),
	)
}

// CreateResource uploads the file at filename as a new resource and
// returns the resource ID.
func (c *Client) CreateResource(ctx context.Context, filename string, props *ResourceProperties) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("opening resource file: %w", err)
	}
	defer f.Close()
	return c.CreateResourceFromReader(ctx, filename, f, props)
}

// CreateResourceFromReader uploads resource data from an arbitrary
// reader. The filename is used for the multipart part and as the
// default title.
func (c *Client) CreateResourceFromReader(ctx context.Context, filename string, data io.Reader, props *ResourceProperties) (string, error) {
	if props == nil {
		props = &ResourceProperties{}
	}
	if err := props.Validate(); err != nil {
		return "", fmt.Errorf("invalid resource properties: %w", err)
	}
	if props.Title == nil {
		props = &ResourceProperties{
			ID:       props.ID,
			Title:    Ptr(filename),
			Filename: props.Filename,
			UserData: props.UserData,
		}
	}

	body, contentType, err := buildResourceUpload(filename, data, props)
	if err != nil {
		return "", err
	}

	newRequest := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, "POST", c.requestURL("/resources", nil), body.reader())
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", contentType)
		return req, nil
	}
	raw, err := c.send(ctx, "POST", "/resources", newRequest)
	if err != nil {
		return "", fmt.Errorf("uploading resource: %w", err)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return created.ID, nil
}

// Resource fetches resource metadata.
func (c *Client) Resource(ctx context.Context, id string, fields ...string) (*Resource, error) {
	var resource Resource
	opts := &ListOptions{Fields: fields}
	if err := c.do(ctx, "GET", "/resources/"+id, opts.query(), nil, &resource); err != nil {
		return nil, fmt.Errorf("getting resource %s: %w", id, err)
	}
	return &resource, nil
}

// ResourceFile fetches the raw file bytes of a resource.
func (c *Client) ResourceFile(ctx context.Context, id string) ([]byte, error) {
	raw, err := c.doRaw(ctx, "GET", "/resources/"+id+"/file", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting resource file %s: %w", id, err)
	}
	return raw, nil
}

// Resources lists resources, one page at a time. A non-empty noteID
// limits the listing to the resources of that note.
func (c *Client) Resources(ctx context.Context, noteID string, opts *ListOptions) (*Page[Resource], error) {
	path := "/resources"
	if noteID != "" {
		path = "/notes/" + noteID + "/resources"
	}
	var page Page[Resource]
	if err := c.do(ctx, "GET", path, opts.query(), nil, &page); err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}
	return &page, nil
}

// AllResources lists resources across all pages.
func (c *Client) AllResources(ctx context.Context, noteID string, opts *ListOptions) ([]Resource, error) {
	return collectAll(func(page int) (*Page[Resource], error) {
		return c.Resources(ctx, noteID, opts.withPage(page))
	})
}

// UpdateResource modifies the set fields of an existing resource.
func (c *Client) UpdateResource(ctx context.Context, id string, props *ResourceProperties) error {
	if err := props.Validate(); err != nil {
		return fmt.Errorf("invalid resource properties: %w", err)
	}
	if err := c.do(ctx, "PUT", "/resources/"+id, nil, props, nil); err != nil {
		return fmt.Errorf("updating resource %s: %w", id, err)
	}
	return nil
}

// DeleteResource deletes a resource.
func (c *Client) DeleteResource(ctx context.Context, id string) error {
	if err := c.do(ctx, "DELETE", "/resources/"+id, nil, nil, nil); err != nil {
		return fmt.Errorf("deleting resource %s: %w", id, err)
	}
	return nil
}

// uploadBody holds a fully buffered multipart body so retried requests
// can replay it.
type uploadBody struct {
	data []byte
}

func (b *uploadBody) reader() io.Reader {
	return bytes.NewReader(b.data)
}

// buildResourceUpload assembles the multipart payload the resource
// endpoint expects: a "data" part with the file (the filename is
// JSON-quoted on the wire) and a "props" part with the metadata JSON.
func buildResourceUpload(filename string, data io.Reader, props *ResourceProperties) (*uploadBody, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	// The endpoint expects the filename JSON-encoded inside the part
	// header, so special characters survive the multipart encoding.
	quotedName, err := json.Marshal(filename)
	if err != nil {
		return nil, "", fmt.Errorf("encoding filename: %w", err)
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="data"; filename=%q`, string(quotedName)))
	filePart, err := mw.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(filePart, data); err != nil {
		return nil, "", fmt.Errorf("copying resource data: %w", err)
	}

	propsJSON, err := json.Marshal(props)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling resource properties: %w", err)
	}
	if err := mw.WriteField("props", string(propsJSON)); err != nil {
		return nil, "", fmt.Errorf("writing props part: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}
	return &uploadBody{data: buf.Bytes()}, mw.FormDataContentType(), nil
}

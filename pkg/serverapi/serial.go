package serverapi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"
	"github.com/mitchellh/mapstructure"

	"github.com/dataplume/joplingo/pkg/joplin"
)

// The server stores items as text files: an optional title block, an
// optional body block, then a block of "key: value" metadata lines,
// with blank lines between blocks. Timestamps are ISO-8601 with
// millisecond precision, booleans are 0/1, enums are their numeric
// values.
// https://github.com/laurent22/joplin/blob/dev/packages/lib/models/BaseItem.ts

const serialTimeLayout = "2006-01-02T15:04:05.000Z"

// errUnsupportedItemType marks item kinds the deserializer does not
// handle; listings skip them.
var errUnsupportedItemType = errors.New("unsupported item type")

// Serialize renders an item into the server's text format. Field
// names come from the item's json tags; zero-valued fields are
// skipped, except the type which is always written.
func Serialize(item any) (string, error) {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("cannot serialize %T, want an item struct", item)
	}

	var title, body string
	var metadata []string
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		name := jsonFieldName(t.Field(i))
		if name == "" {
			continue
		}
		value := v.Field(i)
		if value.IsZero() && name != "type_" {
			continue
		}

		switch name {
		case "title":
			title = value.String()
		case "body":
			body = value.String()
		default:
			rendered, err := renderValue(value)
			if err != nil {
				return "", fmt.Errorf("serializing field %s: %w", name, err)
			}
			metadata = append(metadata, name+": "+rendered)
		}
	}

	// The title block must be present, even when empty, whenever a body
	// follows; otherwise a reader would take the body for the title.
	var sb strings.Builder
	if title != "" || body != "" {
		sb.WriteString(title)
		sb.WriteString("\n\n")
	}
	if body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	sb.WriteString(strings.Join(metadata, "\n"))
	return sb.String(), nil
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

func renderValue(v reflect.Value) (string, error) {
	switch value := v.Interface().(type) {
	case joplin.Timestamp:
		return value.UTC().Format(serialTimeLayout), nil
	case joplin.Bool:
		if value {
			return "1", nil
		}
		return "0", nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		if v.Bool() {
			return "1", nil
		}
		return "0", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported field kind %s", v.Kind())
	}
}

// Deserialize parses the server's text format back into a typed item:
// *joplin.Note, *joplin.Notebook, *joplin.Resource, *joplin.Tag,
// *joplin.Revision or *NoteTag, depending on the type metadata.
//
// The metadata block is whatever follows the last blank line; a
// leading block is the title, and a second block is the body.
func Deserialize(serialized string) (any, error) {
	metadata, err := splitSerialized(serialized)
	if err != nil {
		return nil, err
	}

	typeValue, ok := metadata["type_"]
	if !ok {
		return nil, fmt.Errorf("item has no type metadata")
	}
	typeNum, err := strconv.Atoi(typeValue)
	if err != nil {
		return nil, fmt.Errorf("invalid item type %q: %w", typeValue, err)
	}

	switch joplin.ItemType(typeNum) {
	case joplin.ItemTypeNote:
		var note joplin.Note
		return &note, decodeItem(metadata, &note)
	case joplin.ItemTypeFolder:
		var notebook joplin.Notebook
		return &notebook, decodeItem(metadata, &notebook)
	case joplin.ItemTypeResource:
		var resource joplin.Resource
		return &resource, decodeItem(metadata, &resource)
	case joplin.ItemTypeTag:
		var tag joplin.Tag
		return &tag, decodeItem(metadata, &tag)
	case joplin.ItemTypeNoteTag:
		var noteTag NoteTag
		return &noteTag, decodeItem(metadata, &noteTag)
	case joplin.ItemTypeRevision:
		var revision joplin.Revision
		return &revision, decodeItem(metadata, &revision)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedItemType, joplin.ItemType(typeNum))
	}
}

// splitSerialized separates title, body and metadata and returns them
// merged into one key/value map.
func splitSerialized(serialized string) (map[string]string, error) {
	var title, body, rawMetadata string
	if idx := strings.LastIndex(serialized, "\n\n"); idx < 0 {
		rawMetadata = serialized
	} else {
		rawMetadata = serialized[idx+2:]
		head := serialized[:idx]
		if headIdx := strings.Index(head, "\n\n"); headIdx < 0 {
			title = head
		} else {
			title = head[:headIdx]
			body = head[headIdx+2:]
		}
	}

	metadata := make(map[string]string)
	for _, line := range strings.Split(rawMetadata, "\n") {
		key, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, fmt.Errorf("malformed metadata line %q", line)
		}
		if value == "" {
			continue
		}
		metadata[key] = value
	}
	if title != "" {
		metadata["title"] = title
	}
	if body != "" {
		metadata["body"] = body
	}
	return metadata, nil
}

// decodeItem maps the metadata onto an item struct by json tag name.
// Numbers and booleans arrive as strings and are converted weakly;
// timestamps are parsed from their ISO form.
func decodeItem(metadata map[string]string, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       timestampDecodeHook,
	})
	if err != nil {
		return fmt.Errorf("building item decoder: %w", err)
	}
	if err := decoder.Decode(metadata); err != nil {
		return fmt.Errorf("decoding item metadata: %w", err)
	}
	return nil
}

var timestampType = reflect.TypeOf(joplin.Timestamp{})

func timestampDecodeHook(from, to reflect.Type, data any) (any, error) {
	if to != timestampType {
		return data, nil
	}
	s, ok := data.(string)
	if !ok {
		return data, nil
	}
	if s == "" || s == "0" {
		return joplin.Timestamp{}, nil
	}
	parsed, err := dateparse.ParseAny(s)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return joplin.NewTimestamp(parsed.UTC()), nil
}

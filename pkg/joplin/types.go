package joplin

import (
	"fmt"
	"strconv"
	"time"
)

// ItemType identifies the kind of a Joplin item. The numeric values are
// fixed by the Joplin database schema and appear on the wire in the
// "type_" and "item_type" fields.
type ItemType int

const (
	ItemTypeNote               ItemType = 1
	ItemTypeFolder             ItemType = 2
	ItemTypeSetting            ItemType = 3
	ItemTypeResource           ItemType = 4
	ItemTypeTag                ItemType = 5
	ItemTypeNoteTag            ItemType = 6
	ItemTypeSearch             ItemType = 7
	ItemTypeAlarm              ItemType = 8
	ItemTypeMasterKey          ItemType = 9
	ItemTypeItemChange         ItemType = 10
	ItemTypeNoteResource       ItemType = 11
	ItemTypeResourceLocalState ItemType = 12
	ItemTypeRevision           ItemType = 13
	ItemTypeMigration          ItemType = 14
	ItemTypeSmartFilter        ItemType = 15
	ItemTypeCommand            ItemType = 16
)

var itemTypeNames = map[ItemType]string{
	ItemTypeNote:               "note",
	ItemTypeFolder:             "folder",
	ItemTypeSetting:            "setting",
	ItemTypeResource:           "resource",
	ItemTypeTag:                "tag",
	ItemTypeNoteTag:            "note_tag",
	ItemTypeSearch:             "search",
	ItemTypeAlarm:              "alarm",
	ItemTypeMasterKey:          "master_key",
	ItemTypeItemChange:         "item_change",
	ItemTypeNoteResource:       "note_resource",
	ItemTypeResourceLocalState: "resource_local_state",
	ItemTypeRevision:           "revision",
	ItemTypeMigration:          "migration",
	ItemTypeSmartFilter:        "smart_filter",
	ItemTypeCommand:            "command",
}

// String returns the lowercase name Joplin uses for the type, e.g. in
// the search endpoint's "type" parameter.
func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("item_type(%d)", int(t))
}

// EventChangeType describes what happened to an item in an event.
type EventChangeType int

const (
	EventCreated EventChangeType = 1
	EventUpdated EventChangeType = 2
	EventDeleted EventChangeType = 3
)

// MarkupLanguage is the markup flavor of a note body.
type MarkupLanguage int

const (
	MarkupMarkdown MarkupLanguage = 1
	MarkupHTML     MarkupLanguage = 2
)

// Timestamp is a point in time that travels as unix milliseconds on the
// wire. Zero on the wire maps to the zero time and back, matching how
// Joplin represents "not set".
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*t = Timestamp{}
		return nil
	}
	// Some endpoints return timestamps as JSON strings.
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", string(data), err)
	}
	if ms == 0 {
		*t = Timestamp{}
		return nil
	}
	*t = Timestamp{Time: time.UnixMilli(int64(ms)).UTC()}
	return nil
}

// Bool is a boolean that travels as 0/1 on the wire.
type Bool bool

func (b Bool) MarshalJSON() ([]byte, error) {
	if b {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false", "null":
		*b = false
	case "1", "true":
		*b = true
	default:
		return fmt.Errorf("invalid boolean value %q", string(data))
	}
	return nil
}

// Note is a note as returned by the data API. Which fields are
// populated depends on the requested field list; the API defaults to
// id, parent_id and title.
type Note struct {
	ID                   string         `json:"id"`
	ParentID             string         `json:"parent_id"`
	Title                string         `json:"title"`
	Body                 string         `json:"body"`
	CreatedTime          Timestamp      `json:"created_time"`
	UpdatedTime          Timestamp      `json:"updated_time"`
	IsConflict           Bool           `json:"is_conflict"`
	Latitude             float64        `json:"latitude"`
	Longitude            float64        `json:"longitude"`
	Altitude             float64        `json:"altitude"`
	Author               string         `json:"author"`
	SourceURL            string         `json:"source_url"`
	IsTodo               Bool           `json:"is_todo"`
	TodoDue              Timestamp      `json:"todo_due"`
	TodoCompleted        Timestamp      `json:"todo_completed"`
	Source               string         `json:"source"`
	SourceApplication    string         `json:"source_application"`
	ApplicationData      string         `json:"application_data"`
	Order                float64        `json:"order"`
	UserCreatedTime      Timestamp      `json:"user_created_time"`
	UserUpdatedTime      Timestamp      `json:"user_updated_time"`
	EncryptionCipherText string         `json:"encryption_cipher_text"`
	EncryptionApplied    Bool           `json:"encryption_applied"`
	MarkupLanguage       MarkupLanguage `json:"markup_language"`
	IsShared             Bool           `json:"is_shared"`
	ShareID              string         `json:"share_id"`
	ConflictOriginalID   string         `json:"conflict_original_id"`
	MasterKeyID          string         `json:"master_key_id"`
	UserData             string         `json:"user_data"`
	DeletedTime          Timestamp      `json:"deleted_time"`
	BodyHTML             string         `json:"body_html"`
	BaseURL              string         `json:"base_url"`
	ImageDataURL         string         `json:"image_data_url"`
	CropRect             string         `json:"crop_rect"`
	Type                 ItemType       `json:"type_"`
}

// Notebook is a notebook ("folder" in API terms).
type Notebook struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	CreatedTime          Timestamp `json:"created_time"`
	UpdatedTime          Timestamp `json:"updated_time"`
	UserCreatedTime      Timestamp `json:"user_created_time"`
	UserUpdatedTime      Timestamp `json:"user_updated_time"`
	EncryptionCipherText string    `json:"encryption_cipher_text"`
	EncryptionApplied    Bool      `json:"encryption_applied"`
	ParentID             string    `json:"parent_id"`
	IsShared             Bool      `json:"is_shared"`
	ShareID              string    `json:"share_id"`
	MasterKeyID          string    `json:"master_key_id"`
	Icon                 string    `json:"icon"`
	UserData             string    `json:"user_data"`
	DeletedTime          Timestamp `json:"deleted_time"`
	Type                 ItemType  `json:"type_"`
}

// Tag is a note tag.
type Tag struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	CreatedTime          Timestamp `json:"created_time"`
	UpdatedTime          Timestamp `json:"updated_time"`
	UserCreatedTime      Timestamp `json:"user_created_time"`
	UserUpdatedTime      Timestamp `json:"user_updated_time"`
	EncryptionCipherText string    `json:"encryption_cipher_text"`
	EncryptionApplied    Bool      `json:"encryption_applied"`
	IsShared             Bool      `json:"is_shared"`
	ParentID             string    `json:"parent_id"`
	UserData             string    `json:"user_data"`
	Type                 ItemType  `json:"type_"`
}

// Resource is a file attachment. The metadata lives here; the file
// bytes are fetched separately with Client.ResourceFile.
type Resource struct {
	ID                      string    `json:"id"`
	Title                   string    `json:"title"`
	Mime                    string    `json:"mime"`
	Filename                string    `json:"filename"`
	CreatedTime             Timestamp `json:"created_time"`
	UpdatedTime             Timestamp `json:"updated_time"`
	UserCreatedTime         Timestamp `json:"user_created_time"`
	UserUpdatedTime         Timestamp `json:"user_updated_time"`
	FileExtension           string    `json:"file_extension"`
	EncryptionCipherText    string    `json:"encryption_cipher_text"`
	EncryptionApplied       Bool      `json:"encryption_applied"`
	EncryptionBlobEncrypted Bool      `json:"encryption_blob_encrypted"`
	Size                    int64     `json:"size"`
	IsShared                Bool      `json:"is_shared"`
	ShareID                 string    `json:"share_id"`
	MasterKeyID             string    `json:"master_key_id"`
	UserData                string    `json:"user_data"`
	BlobUpdatedTime         Timestamp `json:"blob_updated_time"`
	OCRText                 string    `json:"ocr_text"`
	OCRDetails              string    `json:"ocr_details"`
	OCRStatus               int       `json:"ocr_status"`
	OCRError                string    `json:"ocr_error"`
	Type                    ItemType  `json:"type_"`
}

// Revision is a stored diff of a previous item state.
type Revision struct {
	ID                   string    `json:"id"`
	ParentID             string    `json:"parent_id"`
	ItemType             ItemType  `json:"item_type"`
	ItemID               string    `json:"item_id"`
	ItemUpdatedTime      Timestamp `json:"item_updated_time"`
	TitleDiff            string    `json:"title_diff"`
	BodyDiff             string    `json:"body_diff"`
	MetadataDiff         string    `json:"metadata_diff"`
	EncryptionCipherText string    `json:"encryption_cipher_text"`
	EncryptionApplied    Bool      `json:"encryption_applied"`
	UpdatedTime          Timestamp `json:"updated_time"`
	CreatedTime          Timestamp `json:"created_time"`
	Type                 ItemType  `json:"type_"`
}

// Event is an item change event. Unlike items, events carry a numeric
// auto-incrementing ID and are paginated with a cursor.
type Event struct {
	ID          int64           `json:"id"`
	ItemType    ItemType        `json:"item_type"`
	ItemID      string          `json:"item_id"`
	Type        EventChangeType `json:"type"`
	CreatedTime Timestamp       `json:"created_time"`
}

// Ptr returns a pointer to v. Convenience for filling property structs.
func Ptr[T any](v T) *T {
	return &v
}

// Package tinkaes provides Tink integration for the traced AES cipher.
// This file contains the KeyManager implementation that registers aestrace keys with Tink's registry.
package tinkaes

import (
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/google/tink/go/subtle/random"
	"github.com/vdparikh/aestrace/subtle"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	// KeyTypeURL is the type URL for traced AES keys in Tink's registry.
	KeyTypeURL = "type.googleapis.com/aestrace.AesTraceKey"

	defaultKeySize = 32
)

// KeyManager implements registry.KeyManager for traced AES keys.
// Key material is stored as a serialized wrapperspb.BytesValue.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new KeyManager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: KeyTypeURL,
	}
}

// Primitive parses serializedKey and returns its expanded *subtle.KeySchedule.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if len(serializedKey) == 0 {
		return nil, fmt.Errorf("tinkaes: empty key")
	}
	key := new(wrapperspb.BytesValue)
	if err := proto.Unmarshal(serializedKey, key); err != nil {
		return nil, fmt.Errorf("tinkaes: invalid key: %w", err)
	}
	ks, err := subtle.ExpandKey(key.GetValue(), nil)
	if err != nil {
		return nil, fmt.Errorf("tinkaes: failed to expand key: %w", err)
	}
	return ks, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey generates a new key. The template value is a single byte holding the
// key size; an empty template means AES-256.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	keySize, err := templateKeySize(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}
	return &wrapperspb.BytesValue{Value: random.GetRandomBytes(uint32(keySize))}, nil
}

// NewKeyData creates a new KeyData from the given key template.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	key, err := km.NewKey(serializedKeyTemplate)
	if err != nil {
		return nil, err
	}
	value, err := proto.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("tinkaes: failed to serialize key: %w", err)
	}
	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           value,
		KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
	}, nil
}

var _ registry.KeyManager = (*KeyManager)(nil)

func templateKeySize(serializedKeyTemplate []byte) (int, error) {
	if len(serializedKeyTemplate) == 0 {
		return defaultKeySize, nil
	}
	keySize := int(serializedKeyTemplate[0])
	if _, err := subtle.VariantForKeySize(keySize); err != nil {
		return 0, fmt.Errorf("tinkaes: invalid key size in template: %d bytes (must be 16, 24, or 32)", keySize)
	}
	return keySize, nil
}

// KeyTemplate creates a key template for traced AES keys.
//
//	handle, err := keyset.NewHandle(tinkaes.KeyTemplate())
//
// The template generates AES-256 keys. For other sizes use KeyTemplateAES128
// or KeyTemplateAES192.
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return KeyTemplateAES256()
}

// KeyTemplateAES128 creates a key template for AES-128 (16 bytes).
func KeyTemplateAES128() *tink_go_proto.KeyTemplate {
	return keyTemplate(16)
}

// KeyTemplateAES192 creates a key template for AES-192 (24 bytes).
func KeyTemplateAES192() *tink_go_proto.KeyTemplate {
	return keyTemplate(24)
}

// KeyTemplateAES256 creates a key template for AES-256 (32 bytes).
func KeyTemplateAES256() *tink_go_proto.KeyTemplate {
	return keyTemplate(32)
}

func keyTemplate(size byte) *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          KeyTypeURL,
		Value:            []byte{size},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle holding a single raw key,
// for instance one of the reference vectors.
//
// The key must be 16, 24, or 32 bytes (AES-128, AES-192, or AES-256).
//
// Example:
//
//	handle, err := tinkaes.NewKeysetHandleFromKey(key)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c, err := tinkaes.New(handle, aestrace.CBC)
//
// The keyset is unencrypted.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if _, err := subtle.VariantForKeySize(len(key)); err != nil {
		return nil, fmt.Errorf("tinkaes: invalid key size: %d bytes (must be 16, 24, or 32)", len(key))
	}

	value, err := proto.Marshal(&wrapperspb.BytesValue{Value: key})
	if err != nil {
		return nil, fmt.Errorf("tinkaes: failed to serialize key: %w", err)
	}

	keyID := random.GetRandomUint32()
	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key: []*tink_go_proto.Keyset_Key{{
			KeyData: &tink_go_proto.KeyData{
				TypeUrl:         KeyTypeURL,
				Value:           value,
				KeyMaterialType: tink_go_proto.KeyData_SYMMETRIC,
			},
			KeyId:            keyID,
			Status:           tink_go_proto.KeyStatusType_ENABLED,
			OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
		}},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}

// PrimaryKey returns the raw bytes of the primary key of an unencrypted
// keyset.
func PrimaryKey(handle *keyset.Handle) ([]byte, error) {
	if handle == nil {
		return nil, fmt.Errorf("tinkaes: keyset handle cannot be nil")
	}
	ks := insecurecleartextkeyset.KeysetMaterial(handle)
	for _, k := range ks.GetKey() {
		if k.GetKeyId() != ks.GetPrimaryKeyId() {
			continue
		}
		kd := k.GetKeyData()
		if kd.GetTypeUrl() != KeyTypeURL {
			return nil, fmt.Errorf("tinkaes: primary key has type %q", kd.GetTypeUrl())
		}
		if kd.GetKeyMaterialType() != tink_go_proto.KeyData_SYMMETRIC {
			return nil, fmt.Errorf("tinkaes: unsupported key material type %v", kd.GetKeyMaterialType())
		}
		key := new(wrapperspb.BytesValue)
		if err := proto.Unmarshal(kd.GetValue(), key); err != nil {
			return nil, fmt.Errorf("tinkaes: invalid key: %w", err)
		}
		return key.GetValue(), nil
	}
	return nil, fmt.Errorf("tinkaes: primary key %d not found", ks.GetPrimaryKeyId())
}

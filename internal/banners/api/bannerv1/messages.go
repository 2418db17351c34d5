// Package bannerv1 defines the banner.v1 RPC surface: wire messages,
// the BannerService descriptor and its client.
//
// Messages encode themselves in protobuf wire format, so any protobuf
// client built from the same schema can call the service.
package bannerv1

import (
	"bytes"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

var ErrMalformed = errors.New("malformed message")

// GetCurrentBannerRequest is banner.v1.GetCurrentBannerRequest:
//
//	string location = 1;
type GetCurrentBannerRequest struct {
	Location string `json:"location"`
}

func (r *GetCurrentBannerRequest) GetLocation() string {
	if r == nil {
		return ""
	}

	return r.Location
}

func (r *GetCurrentBannerRequest) MarshalWire() []byte {
	return appendString(nil, 1, r.Location)
}

func (r *GetCurrentBannerRequest) UnmarshalWire(b []byte) error {
	*r = GetCurrentBannerRequest{}

	return consumeFields(b, func(num protowire.Number, v []byte) {
		if num == 1 {
			r.Location = string(v)
		}
	})
}

// GetCurrentBannerResponse is banner.v1.GetCurrentBannerResponse:
//
//	string title = 1;
//	string description = 2;
//	bytes image = 3;
//	string image_format = 4;
type GetCurrentBannerResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       []byte `json:"image"`
	ImageFormat string `json:"image_format"` //nolint:tagliatelle
}

func (r *GetCurrentBannerResponse) MarshalWire() []byte {
	b := appendString(nil, 1, r.Title)
	b = appendString(b, 2, r.Description)

	if len(r.Image) != 0 {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, r.Image)
	}

	return appendString(b, 4, r.ImageFormat)
}

func (r *GetCurrentBannerResponse) UnmarshalWire(b []byte) error {
	*r = GetCurrentBannerResponse{}

	return consumeFields(b, func(num protowire.Number, v []byte) {
		switch num {
		case 1:
			r.Title = string(v)
		case 2:
			r.Description = string(v)
		case 3:
			r.Image = bytes.Clone(v)
		case 4:
			r.ImageFormat = string(v)
		}
	})
}

// appendString omits empty values, as proto3 does for scalar defaults.
func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}

	b = protowire.AppendTag(b, num, protowire.BytesType)

	return protowire.AppendString(b, v)
}

// consumeFields calls set for every length-delimited field and skips the rest.
func consumeFields(b []byte, set func(protowire.Number, []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}

		b = b[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
			}

			b = b[n:]

			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}

		set(num, v)

		b = b[n:]
	}

	return nil
}

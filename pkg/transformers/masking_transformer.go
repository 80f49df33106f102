// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ggwhite/go-masker"
)

const (
	mPassword   string = "password"
	mName       string = "name"
	mAddress    string = "address"
	mEmail      string = "email"
	mMobile     string = "mobile"
	mTelephone  string = "tel"
	mID         string = "id"
	mCreditCard string = "credit_card"
	mURL        string = "url"
	mDefault    string = "default"
)

var errInvalidMaskingType = errors.New("masking type must be one of 'password', 'name', 'address', 'email', 'mobile', 'tel', 'id', 'credit_card', 'url' or 'default'")

type maskingFunction func(val string) string

// MaskingTransformer obscures a value in place using the go-masker rules for
// the configured data class. Unlike the redact transformer it keeps part of
// the original value visible, so it is only suitable for fields that may
// stay partially recognizable.
type MaskingTransformer struct {
	maskingFunction maskingFunction
}

var maskingParams = []Parameter{
	{
		Name:          "type",
		SupportedType: "string",
		Default:       mDefault,
		Required:      false,
	},
}

func NewMaskingTransformer(params ParameterValues) (*MaskingTransformer, error) {
	maskType, err := FindParameterWithDefault(params, "type", mDefault)
	if err != nil {
		return nil, fmt.Errorf("mask: type must be a string: %w", err)
	}

	var mf maskingFunction
	m := masker.New()
	switch maskType {
	case mPassword:
		mf = m.Password
	case mName:
		mf = m.Name
	case mAddress:
		mf = m.Address
	case mEmail:
		mf = m.Email
	case mMobile:
		mf = m.Mobile
	case mID:
		mf = m.ID
	case mTelephone:
		mf = m.Telephone
	case mCreditCard:
		mf = m.CreditCard
	case mURL:
		mf = m.URL
	case mDefault:
		mf = func(v string) string {
			return strings.Repeat("*", len(v))
		}
	default:
		return nil, errInvalidMaskingType
	}

	return &MaskingTransformer{
		maskingFunction: mf,
	}, nil
}

func (mt *MaskingTransformer) Transform(_ context.Context, value string) (string, error) {
	return mt.maskingFunction(value), nil
}

func (mt *MaskingTransformer) Type() TransformerType {
	return Masking
}

func (mt *MaskingTransformer) Close() error {
	return nil
}

func MaskingTransformerDefinition() *Definition {
	return &Definition{
		Parameters: maskingParams,
	}
}

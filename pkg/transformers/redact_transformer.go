// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	greenmaskgenerators "github.com/eminano/greenmask/pkg/generators"
	greenmasktransformers "github.com/eminano/greenmask/pkg/generators/transformers"
	"github.com/eminano/greenmask/pkg/toolkit"

	"github.com/maskstream/csvmask/pkg/generator"
	loglib "github.com/maskstream/csvmask/pkg/log"
)

// RedactTransformer replaces a sensitive value with synthetic data of the
// same class. Values containing an `@` are treated as email addresses,
// anything else as a personal name. When a generation service is configured
// it is asked first; any failure falls back to local random generation, so
// redaction itself never fails. The synthetic output carries no information
// from the input beyond its class.
type RedactTransformer struct {
	generator generator.Generator
	logger    loglib.Logger

	fullName  *greenmasktransformers.RandomPersonTransformer
	localPart *greenmasktransformers.RandomStringTransformer
	domain    *greenmasktransformers.RandomChoiceTransformer
}

const (
	defaultMinLocalPartLength = 5
	defaultMaxLocalPartLength = 10

	localPartSymbols = "abcdefghijklmnopqrstuvwxyz"
)

var defaultEmailDomains = []string{
	"test.com", "example.com", "demo.net", "sample.org", "redacted.io",
}

var errMalformedGeneration = errors.New("generation output is unusable as a replacement")

var redactParams = []Parameter{
	{
		Name:          "email_domains",
		SupportedType: "string array",
		Default:       defaultEmailDomains,
		Required:      false,
	},
	{
		Name:          "min_length",
		SupportedType: "int",
		Default:       defaultMinLocalPartLength,
		Required:      false,
	},
	{
		Name:          "max_length",
		SupportedType: "int",
		Default:       defaultMaxLocalPartLength,
		Required:      false,
	},
}

type RedactOption func(t *RedactTransformer)

func NewRedactTransformer(params ParameterValues, opts ...RedactOption) (*RedactTransformer, error) {
	minLength, err := FindParameterWithDefault(params, "min_length", defaultMinLocalPartLength)
	if err != nil {
		return nil, fmt.Errorf("redact: min_length must be an integer: %w", err)
	}
	maxLength, err := FindParameterWithDefault(params, "max_length", defaultMaxLocalPartLength)
	if err != nil {
		return nil, fmt.Errorf("redact: max_length must be an integer: %w", err)
	}

	domains, found, err := FindParameterArray[string](params, "email_domains")
	if err != nil {
		return nil, fmt.Errorf("redact: email_domains must be a string array: %w", err)
	}
	if !found || len(domains) == 0 {
		domains = defaultEmailDomains
	}

	fullName := greenmasktransformers.NewRandomPersonTransformer(greenmasktransformers.AnyGenderName, nil)
	if err := setRandomGenerator(fullName); err != nil {
		return nil, fmt.Errorf("redact: setting full name generator: %w", err)
	}

	localPart, err := greenmasktransformers.NewRandomStringTransformer([]rune(localPartSymbols), minLength, maxLength)
	if err != nil {
		return nil, fmt.Errorf("redact: creating local part transformer: %w", err)
	}
	if err := setRandomGenerator(localPart); err != nil {
		return nil, fmt.Errorf("redact: setting local part generator: %w", err)
	}

	domainChoices := make([]*toolkit.RawValue, len(domains))
	for i, d := range domains {
		domainChoices[i] = &toolkit.RawValue{
			Data:   []byte(d),
			IsNull: false,
		}
	}
	domain := greenmasktransformers.NewRandomChoiceTransformer(domainChoices)
	if err := setRandomGenerator(domain); err != nil {
		return nil, fmt.Errorf("redact: setting domain generator: %w", err)
	}

	t := &RedactTransformer{
		logger:    loglib.NewNoopLogger(),
		fullName:  fullName,
		localPart: localPart,
		domain:    domain,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// WithGenerator configures an external generation service to be consulted
// before falling back to local random generation.
func WithGenerator(g generator.Generator) RedactOption {
	return func(t *RedactTransformer) {
		t.generator = g
	}
}

func WithLogger(l loglib.Logger) RedactOption {
	return func(t *RedactTransformer) {
		t.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "redact_transformer",
		})
	}
}

func (rt *RedactTransformer) Transform(ctx context.Context, value string) (string, error) {
	if strings.ContainsRune(value, '@') {
		return rt.redactEmail(ctx, value)
	}
	return rt.redactName(ctx, value)
}

func (rt *RedactTransformer) redactName(ctx context.Context, value string) (string, error) {
	if rt.generator != nil {
		name, err := rt.generator.Generate(ctx, generator.Name)
		switch {
		case err == nil && name != "" && name != value && !strings.ContainsRune(name, '@'):
			return name, nil
		case err == nil:
			err = fmt.Errorf("generated name %q: %w", name, errMalformedGeneration)
		}
		rt.logger.Warn(err, "name generation failed, falling back to random generation")
	}

	// greenmask draws from its embedded name pools, ignoring the input when
	// backed by a random generator.
	for attempts := 0; attempts < 3; attempts++ {
		fullName, err := rt.fullName.GetFullName("", []byte(value))
		if err != nil {
			return "", fmt.Errorf("redact: generating random full name: %w", err)
		}
		name := fmt.Sprintf("%s %s", fullName["FirstName"], fullName["LastName"])
		if name != value {
			return name, nil
		}
	}
	return "", fmt.Errorf("redact: random full name keeps matching the input value")
}

func (rt *RedactTransformer) redactEmail(ctx context.Context, value string) (string, error) {
	if rt.generator != nil {
		email, err := rt.generator.Generate(ctx, generator.Email)
		switch {
		case err == nil && strings.ContainsRune(email, '@') && strings.ToLower(email) != value:
			return strings.ToLower(email), nil
		case err == nil:
			err = fmt.Errorf("generated email %q: %w", email, errMalformedGeneration)
		}
		rt.logger.Warn(err, "email generation failed, falling back to random generation")
	}

	for attempts := 0; attempts < 3; attempts++ {
		localPart := rt.localPart.Transform([]byte(value))
		domain, err := rt.domain.Transform([]byte(value))
		if err != nil {
			return "", fmt.Errorf("redact: choosing random email domain: %w", err)
		}
		email := fmt.Sprintf("%s@%s", string(localPart), domain.Data)
		if email != value {
			return email, nil
		}
	}
	return "", fmt.Errorf("redact: random email keeps matching the input value")
}

func (rt *RedactTransformer) Type() TransformerType {
	return Redact
}

func (rt *RedactTransformer) Close() error {
	if rt.generator != nil {
		return rt.generator.Close()
	}
	return nil
}

func RedactTransformerDefinition() *Definition {
	return &Definition{
		Parameters: redactParams,
	}
}

func setRandomGenerator(t greenmasktransformers.Transformer) error {
	return t.SetGenerator(greenmaskgenerators.NewRandomBytes(time.Now().UnixNano(), t.GetRequiredGeneratorByteLength()))
}

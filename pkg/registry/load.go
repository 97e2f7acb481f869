package registry

import (
	"context"
	"os"

	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// Decode tries each strategy in order and returns the first document that
// decodes. The file name only influences the order. When every strategy
// fails the result is a *errors.DecodeError naming all of them.
func Decode(ctx context.Context, data []byte, file string, strategies ...Strategy) (*Document, error) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	logger := logging.FromContext(ctx)

	decodeErr := &errors.DecodeError{File: file}
	for _, s := range orderFor(file, strategies) {
		doc, err := s.Decode(data)
		if err != nil {
			logger.Debug().Str("strategy", s.Name()).Err(err).Msg("decode strategy rejected document")
			decodeErr.Attempts = append(decodeErr.Attempts, errors.NewParseError(s.Name(), file, err.Error(), err))
			continue
		}
		doc.Format = s.Name()
		doc.Path = file
		logger.Debug().
			Str("strategy", s.Name()).
			Int("agents", len(doc.Agents)).
			Msg("decoded registry")
		return doc, nil
	}
	return nil, decodeErr
}

// Load reads and decodes the registry document at path.
func Load(ctx context.Context, path string, strategies ...Strategy) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Decode(ctx, data, path, strategies...)
}

// Encode renders the document in the format it was decoded from. Documents
// without a known format are written as YAML.
func Encode(doc *Document, strategies ...Strategy) ([]byte, error) {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	s, ok := StrategyFor(doc.Format, strategies)
	if !ok {
		s = YAMLStrategy{}
	}
	data, err := s.Encode(doc)
	if err != nil {
		return nil, errors.WrapParse(s.Name(), doc.Path, err)
	}
	return data, nil
}

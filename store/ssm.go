package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/guardian/cmdline/log"
)

type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

type SSM struct {
	logger  log.Logger
	client  SSMAPI
	Timeout time.Duration
}

func NewSSM(logger log.Logger, client SSMAPI) *SSM {
	return &SSM{logger: logger, client: client, Timeout: 10 * time.Second}
}

func (s *SSM) Get(ctx context.Context, service Service, name string) (Parameter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	path := service.Path(name)
	s.logger.Debugf("ssm: get %s", path)
	out, err := s.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(true),
	})

	var notFound *types.ParameterNotFound
	if errors.As(err, &notFound) {
		return Parameter{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Parameter{}, err
	}

	return fromSSM(service, out.Parameter), nil
}

func (s *SSM) List(ctx context.Context, service Service) ([]Parameter, error) {
	pages := ssm.NewGetParametersByPathPaginator(s.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(service.Prefix()),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	params := []Parameter{}
	for pages.HasMorePages() {
		page, err := s.nextPage(ctx, pages)
		if err != nil {
			return nil, err
		}
		for i := range page.Parameters {
			params = append(params, fromSSM(service, &page.Parameters[i]))
		}
		s.logger.Debugf("ssm: read page of %d parameters under %s", len(page.Parameters), service.Prefix())
	}

	return params, nil
}

func (s *SSM) nextPage(ctx context.Context, pages *ssm.GetParametersByPathPaginator) (*ssm.GetParametersByPathOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()
	return pages.NextPage(ctx)
}

func fromSSM(service Service, p *types.Parameter) Parameter {
	if p == nil {
		return Parameter{Service: service}
	}
	return Parameter{
		Service:  service,
		Name:     aws.ToString(p.Name),
		Value:    aws.ToString(p.Value),
		IsSecret: p.Type == types.ParameterTypeSecureString,
	}
}

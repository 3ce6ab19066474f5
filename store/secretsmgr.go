package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/guardian/cmdline/log"
)

type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

type SecretsManager struct {
	logger         log.Logger
	client         SecretsManagerAPI
	DefaultTimeout time.Duration
}

func NewSecretsManager(logger log.Logger, client SecretsManagerAPI) *SecretsManager {
	return &SecretsManager{logger: logger, client: client, DefaultTimeout: 10 * time.Second}
}

func (s *SecretsManager) timeoutContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.DefaultTimeout)
}

/*
Get returns the current value of the secret holding the default for name.
NOTE that only string type secrets are supported, a binary secret reads as
the empty string.
*/
func (s *SecretsManager) Get(ctx context.Context, service Service, name string) (Parameter, error) {
	path := service.Path(name)
	value, err := s.secretValue(ctx, path)
	if err != nil {
		return Parameter{}, err
	}

	return Parameter{
		Service:  service,
		Name:     path,
		Value:    value,
		IsSecret: true,
	}, nil
}

/*
List returns every secret under the service prefix. ListSecrets does not
decrypt anything, so each entry costs a second GetSecretValue call.
*/
func (s *SecretsManager) List(ctx context.Context, service Service) ([]Parameter, error) {
	pages := secretsmanager.NewListSecretsPaginator(s.client, &secretsmanager.ListSecretsInput{
		Filters: []types.Filter{
			{
				Key:    types.FilterNameStringTypeName,
				Values: []string{service.Prefix()},
			},
		},
		SortOrder: types.SortOrderTypeAsc,
	})

	results := []Parameter{}
	for pages.HasMorePages() {
		pageCtx, cancelFunc := s.timeoutContext(ctx)
		page, err := pages.NextPage(pageCtx)
		cancelFunc()
		if err != nil {
			return nil, err
		}

		for _, entry := range page.SecretList {
			value, err := s.secretValue(ctx, aws.ToString(entry.ARN))
			if err != nil {
				return nil, err
			}
			results = append(results, Parameter{
				Service:  service,
				Name:     aws.ToString(entry.Name),
				Value:    value,
				IsSecret: true,
			})
		}
		s.logger.Debugf("secrets: read page of %d secrets under %s", len(page.SecretList), service.Prefix())
	}

	return results, nil
}

func (s *SecretsManager) secretValue(ctx context.Context, id string) (string, error) {
	ctx, cancelFunc := s.timeoutContext(ctx)
	defer cancelFunc()

	response, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})

	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return "", fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return "", err
	}

	return aws.ToString(response.SecretString), nil
}

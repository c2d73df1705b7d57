package checks

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

// BucketEncryption is the composite payload for the encryption check:
// bucket discovery followed by a per-bucket configuration lookup.
type BucketEncryption struct {
	Bucket string
	Rules  []s3types.ServerSideEncryptionRule
	Err    error
}

// BucketPublicAccess is the composite payload for the public access
// block check.
type BucketPublicAccess struct {
	Bucket string
	Config *s3types.PublicAccessBlockConfiguration
	Err    error
}

// S3Group builds the stored-data section of the checklist.
func S3Group(cfg awssdk.Config) Group {
	client := s3.NewFromConfig(cfg)

	probeEncryption := func(ctx context.Context) probe.Result {
		buckets, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
		if err != nil {
			return probe.Failed(err)
		}
		var results []BucketEncryption
		for _, b := range buckets.Buckets {
			name := awssdk.ToString(b.Name)
			enc, err := client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: b.Name})
			if err != nil {
				results = append(results, BucketEncryption{Bucket: name, Err: err})
				continue
			}
			results = append(results, BucketEncryption{Bucket: name, Rules: enc.ServerSideEncryptionConfiguration.Rules})
		}
		return probe.Succeeded(results)
	}

	probePublicAccess := func(ctx context.Context) probe.Result {
		buckets, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
		if err != nil {
			return probe.Failed(err)
		}
		var results []BucketPublicAccess
		for _, b := range buckets.Buckets {
			name := awssdk.ToString(b.Name)
			pab, err := client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{Bucket: b.Name})
			if err != nil {
				results = append(results, BucketPublicAccess{Bucket: name, Err: err})
				continue
			}
			results = append(results, BucketPublicAccess{Bucket: name, Config: pab.PublicAccessBlockConfiguration})
		}
		return probe.Succeeded(results)
	}

	return Group{
		SectionID: "storage",
		Title:     "Stored Data Protection",
		State:     domain.DisplayCollapsed,
		Checks: []Check{
			{
				ID:             "s3.bucket-encryption",
				Title:          "All S3 buckets enforce server-side encryption",
				Probe:          probeEncryption,
				Evaluate:       ExtractBucketEncryption,
				Recommendation: "Enable default server-side encryption (SSE-S3 or SSE-KMS) on every bucket that lacks it.",
			},
			{
				ID:             "s3.public-access-block",
				Title:          "All S3 buckets block public access",
				Probe:          probePublicAccess,
				Evaluate:       ExtractPublicAccessBlock,
				Recommendation: "Enable all four public access block settings on every bucket, or at the account level.",
			},
		},
	}
}

// ExtractBucketEncryption requires every discovered bucket to carry a
// default encryption rule.
func ExtractBucketEncryption(payload any) (evidence.Evaluation, error) {
	results, ok := payload.([]BucketEncryption)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	if len(results) == 0 {
		return evidence.Compliant("No S3 buckets exist in this account."), nil
	}

	var unencrypted, unknown []string
	for _, r := range results {
		switch {
		case r.Err != nil && probe.Categorize(r.Err) == probe.ErrorAuthorization:
			unknown = append(unknown, r.Bucket)
		case r.Err != nil:
			// GetBucketEncryption fails when no configuration exists.
			unencrypted = append(unencrypted, r.Bucket)
		case len(r.Rules) == 0:
			unencrypted = append(unencrypted, r.Bucket)
		}
	}

	if len(unencrypted) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Buckets without default encryption: %s.", strings.Join(unencrypted, ", "))), nil
	}
	if len(unknown) > 0 {
		return evidence.Inconclusive(fmt.Sprintf("Encryption configuration could not be read for: %s.", strings.Join(unknown, ", "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("All %d buckets enforce default server-side encryption.", len(results))), nil
}

// ExtractPublicAccessBlock requires all four block settings enabled on
// every discovered bucket.
func ExtractPublicAccessBlock(payload any) (evidence.Evaluation, error) {
	results, ok := payload.([]BucketPublicAccess)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	if len(results) == 0 {
		return evidence.Compliant("No S3 buckets exist in this account."), nil
	}

	var open, unknown []string
	for _, r := range results {
		switch {
		case r.Err != nil && probe.Categorize(r.Err) == probe.ErrorAuthorization:
			unknown = append(unknown, r.Bucket)
		case r.Err != nil, r.Config == nil:
			// No public access block configured at all.
			open = append(open, r.Bucket)
		case !allBlocked(r.Config):
			open = append(open, r.Bucket)
		}
	}

	if len(open) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Buckets without a full public access block: %s.", strings.Join(open, ", "))), nil
	}
	if len(unknown) > 0 {
		return evidence.Inconclusive(fmt.Sprintf("Public access configuration could not be read for: %s.", strings.Join(unknown, ", "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("All %d buckets block public access.", len(results))), nil
}

func allBlocked(cfg *s3types.PublicAccessBlockConfiguration) bool {
	return awssdk.ToBool(cfg.BlockPublicAcls) &&
		awssdk.ToBool(cfg.BlockPublicPolicy) &&
		awssdk.ToBool(cfg.IgnorePublicAcls) &&
		awssdk.ToBool(cfg.RestrictPublicBuckets)
}

package checks

import (
	"context"
	"errors"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/de-tools/audit-atlas/pkg/services/gate"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

// Capabilities is the fixed ordered list of read-only API permissions
// the assessment needs. The gate probes each exactly once, in this
// order.
func Capabilities(cfg awssdk.Config) []gate.Capability {
	stsClient := sts.NewFromConfig(cfg)
	ec2Client := ec2.NewFromConfig(cfg)
	s3Client := s3.NewFromConfig(cfg)
	rdsClient := rds.NewFromConfig(cfg)
	iamClient := iam.NewFromConfig(cfg)

	return []gate.Capability{
		{
			ID:    "sts:GetCallerIdentity",
			Title: "Resolve caller identity",
			Probe: func(ctx context.Context) probe.Result {
				out, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach sts:GetCallerIdentity to the assessment principal.",
		},
		{
			ID:    "ec2:DescribeRegions",
			Title: "Enumerate regions",
			Probe: func(ctx context.Context) probe.Result {
				out, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach ec2:DescribeRegions to the assessment principal.",
		},
		{
			ID:    "ec2:DescribeSecurityGroups",
			Title: "Read security group rules",
			Probe: func(ctx context.Context) probe.Result {
				out, err := ec2Client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
					MaxResults: awssdk.Int32(5),
				})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach ec2:DescribeSecurityGroups to the assessment principal.",
		},
		{
			ID:    "s3:ListAllMyBuckets",
			Title: "List S3 buckets",
			Probe: func(ctx context.Context) probe.Result {
				out, err := s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach s3:ListAllMyBuckets to the assessment principal.",
		},
		{
			ID:    "rds:DescribeDBInstances",
			Title: "Describe RDS instances",
			Probe: func(ctx context.Context) probe.Result {
				out, err := rdsClient.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach rds:DescribeDBInstances to the assessment principal.",
		},
		{
			ID:    "iam:GetAccountPasswordPolicy",
			Title: "Read account password policy",
			Probe: func(ctx context.Context) probe.Result {
				out, err := iamClient.GetAccountPasswordPolicy(ctx, &iam.GetAccountPasswordPolicyInput{})
				if err != nil {
					// A missing policy proves the permission works; the
					// finding belongs to the checklist, not the gate.
					var apiErr smithy.APIError
					if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchEntity" {
						return probe.Succeeded(nil)
					}
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach iam:GetAccountPasswordPolicy to the assessment principal.",
		},
		{
			ID:    "iam:GetAccountSummary",
			Title: "Read account summary",
			Probe: func(ctx context.Context) probe.Result {
				out, err := iamClient.GetAccountSummary(ctx, &iam.GetAccountSummaryInput{})
				if err != nil {
					return probe.Failed(err)
				}
				return probe.Succeeded(out)
			},
			Recommendation: "Attach iam:GetAccountSummary to the assessment principal.",
		},
	}
}

// Groups assembles the full domain checklist in run order.
func Groups(cfg awssdk.Config) []Group {
	return []Group{
		IAMGroup(cfg),
		EC2Group(cfg),
		S3Group(cfg),
		RDSGroup(cfg),
	}
}

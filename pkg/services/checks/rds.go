package checks

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

// RDSGroup builds the database section of the checklist.
func RDSGroup(cfg awssdk.Config) Group {
	client := rds.NewFromConfig(cfg)

	describeInstances := func(ctx context.Context) probe.Result {
		out, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{})
		if err != nil {
			return probe.Failed(err)
		}
		return probe.Succeeded(out)
	}

	return Group{
		SectionID: "databases",
		Title:     "Database Protection",
		State:     domain.DisplayCollapsed,
		Checks: []Check{
			{
				ID:             "rds.storage-encryption",
				Title:          "RDS instances encrypt storage at rest",
				Probe:          describeInstances,
				Evaluate:       ExtractRDSEncryption,
				Recommendation: "Recreate unencrypted instances from encrypted snapshots; storage encryption cannot be enabled in place.",
			},
			{
				ID:             "rds.public-accessibility",
				Title:          "RDS instances are not publicly accessible",
				Probe:          describeInstances,
				Evaluate:       ExtractRDSPublicAccess,
				Recommendation: "Disable public accessibility and route database access through private subnets.",
			},
		},
	}
}

// ExtractRDSEncryption requires StorageEncrypted on every instance.
func ExtractRDSEncryption(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*rds.DescribeDBInstancesOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	if len(out.DBInstances) == 0 {
		return evidence.Compliant("No RDS instances exist in this scope."), nil
	}

	var unencrypted []string
	for _, db := range out.DBInstances {
		if !awssdk.ToBool(db.StorageEncrypted) {
			unencrypted = append(unencrypted, awssdk.ToString(db.DBInstanceIdentifier))
		}
	}
	if len(unencrypted) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Unencrypted RDS instances: %s.", strings.Join(unencrypted, ", "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("All %d RDS instances encrypt storage at rest.", len(out.DBInstances))), nil
}

// ExtractRDSPublicAccess flags any publicly reachable instance.
func ExtractRDSPublicAccess(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*rds.DescribeDBInstancesOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}
	if len(out.DBInstances) == 0 {
		return evidence.Compliant("No RDS instances exist in this scope."), nil
	}

	var public []string
	for _, db := range out.DBInstances {
		if awssdk.ToBool(db.PubliclyAccessible) {
			public = append(public, awssdk.ToString(db.DBInstanceIdentifier))
		}
	}
	if len(public) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Publicly accessible RDS instances: %s.", strings.Join(public, ", "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("None of the %d RDS instances are publicly accessible.", len(out.DBInstances))), nil
}

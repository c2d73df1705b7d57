package checks

import (
	"context"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/evidence"
	"github.com/de-tools/audit-atlas/pkg/services/probe"
)

// sensitivePorts are administrative ports that must never be reachable
// from the whole internet.
var sensitivePorts = []int32{22, 3389, 3306, 5432, 1433}

// EC2Group builds the network-exposure section of the checklist.
func EC2Group(cfg awssdk.Config) Group {
	client := ec2.NewFromConfig(cfg)

	describeGroups := func(ctx context.Context) probe.Result {
		out, err := client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{})
		if err != nil {
			return probe.Failed(err)
		}
		return probe.Succeeded(out)
	}

	return Group{
		SectionID: "network",
		Title:     "Network Exposure",
		State:     domain.DisplayCollapsed,
		Checks: []Check{
			{
				ID:             "ec2.sg.open-admin-ports",
				Title:          "Security groups do not expose administrative ports to the internet",
				Probe:          describeGroups,
				Evaluate:       ExtractOpenAdminPorts,
				Recommendation: "Restrict inbound rules for ports 22, 3389 and database ports to known CIDR ranges or a bastion security group.",
			},
			{
				ID:             "ec2.sg.default-restricts-all",
				Title:          "Default security groups restrict all traffic",
				Probe:          describeGroups,
				Evaluate:       ExtractDefaultGroupRules,
				Recommendation: "Remove all inbound and outbound rules from every default security group; place workloads in purpose-built groups instead.",
			},
			{
				ID:             "ec2.network-segmentation",
				Title:          "Network segmentation between trusted and untrusted zones is documented",
				Manual:         true,
				Guidance:       "Review VPC and subnet design documentation to confirm segmentation between the cardholder data environment and other networks.",
				Recommendation: "Document the segmentation model and validate it with a current network diagram.",
			},
		},
	}
}

// ExtractOpenAdminPorts scans security group ingress rules for
// sensitive ports open to 0.0.0.0/0 or ::/0.
func ExtractOpenAdminPorts(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*ec2.DescribeSecurityGroupsOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}

	var exposed []string
	for _, sg := range out.SecurityGroups {
		for _, perm := range sg.IpPermissions {
			for _, port := range sensitivePorts {
				if !permCoversPort(perm, port) {
					continue
				}
				if permOpenToWorld(perm) {
					exposed = append(exposed, fmt.Sprintf("%s (%s) port %d", awssdk.ToString(sg.GroupId), awssdk.ToString(sg.GroupName), port))
				}
			}
		}
	}

	if len(exposed) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Publicly reachable administrative ports found: %s.", strings.Join(exposed, "; "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("No administrative ports are open to the internet across %d security groups.", len(out.SecurityGroups))), nil
}

// ExtractDefaultGroupRules verifies that every group named "default"
// carries no ingress or egress rules.
func ExtractDefaultGroupRules(payload any) (evidence.Evaluation, error) {
	out, ok := payload.(*ec2.DescribeSecurityGroupsOutput)
	if !ok {
		return evidence.Evaluation{}, fmt.Errorf("unexpected payload %T: %w", payload, evidence.ErrIncomplete)
	}

	var offenders []string
	seen := 0
	for _, sg := range out.SecurityGroups {
		if awssdk.ToString(sg.GroupName) != "default" {
			continue
		}
		seen++
		if len(sg.IpPermissions) > 0 || len(sg.IpPermissionsEgress) > 0 {
			offenders = append(offenders, awssdk.ToString(sg.GroupId))
		}
	}

	if seen == 0 {
		return evidence.Inconclusive("No default security groups were returned; verify group inventory manually."), nil
	}
	if len(offenders) > 0 {
		return evidence.NonCompliant(fmt.Sprintf("Default security groups with active rules: %s.", strings.Join(offenders, ", "))), nil
	}
	return evidence.Compliant(fmt.Sprintf("All %d default security groups restrict all traffic.", seen)), nil
}

func permCoversPort(perm ec2types.IpPermission, port int32) bool {
	proto := awssdk.ToString(perm.IpProtocol)
	if proto == "-1" {
		return true
	}
	if proto != "tcp" {
		return false
	}
	from := awssdk.ToInt32(perm.FromPort)
	to := awssdk.ToInt32(perm.ToPort)
	return from <= port && port <= to
}

func permOpenToWorld(perm ec2types.IpPermission) bool {
	for _, r := range perm.IpRanges {
		if awssdk.ToString(r.CidrIp) == "0.0.0.0/0" {
			return true
		}
	}
	for _, r := range perm.Ipv6Ranges {
		if awssdk.ToString(r.CidrIpv6) == "::/0" {
			return true
		}
	}
	return false
}

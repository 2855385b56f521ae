package diagram

import (
	"path"
	"strings"
)

// Package is the namespace prefix of the built-in kinds.
const Package = "diagrams"

// builtin lists the built-in kinds as provider.group -> symbol -> icon file.
var builtin = map[string]map[string]string{
	"aws.compute": {
		"EC2":    "ec2.png",
		"ECS":    "elastic-container-service.png",
		"EKS":    "elastic-kubernetes-service.png",
		"Lambda": "lambda.png",
	},
	"aws.database": {
		"Dynamodb":    "dynamodb.png",
		"ElastiCache": "elasticache.png",
		"RDS":         "rds.png",
	},
	"aws.network": {
		"CloudFront": "cloudfront.png",
		"ELB":        "elastic-load-balancing.png",
		"Route53":    "route-53.png",
		"VPC":        "vpc.png",
	},
	"aws.storage": {
		"EBS": "elastic-block-store-ebs.png",
		"S3":  "simple-storage-service-s3.png",
	},
	"gcp.compute": {
		"GCE":       "compute-engine.png",
		"GKE":       "kubernetes-engine.png",
		"Functions": "functions.png",
	},
	"gcp.database": {
		"SQL": "sql.png",
	},
	"k8s.compute": {
		"Deployment":  "deploy.png",
		"Pod":         "pod.png",
		"StatefulSet": "sts.png",
	},
	"k8s.network": {
		"Ingress": "ing.png",
		"Service": "svc.png",
	},
	"onprem.database": {
		"MongoDB":    "mongodb.png",
		"PostgreSQL": "postgresql.png",
	},
	"onprem.inmemory": {
		"Redis": "redis.png",
	},
	"onprem.queue": {
		"Kafka": "kafka.png",
	},
	"generic.blank": {
		"Blank": "",
	},
}

func init() {
	for group, symbols := range builtin {
		for symbol, icon := range symbols {
			t := NodeType{Namespace: Package + "." + group, Symbol: symbol}
			if icon != "" {
				t.Icon = path.Join(strings.ReplaceAll(group, ".", "/"), icon)
			}
			if err := Register(t); err != nil {
				panic(err)
			}
		}
	}
}

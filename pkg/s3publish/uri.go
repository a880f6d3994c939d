package s3publish

import (
	"errors"
	"fmt"
	"strings"
)

// Destination is a bucket plus key prefix.
type Destination struct {
	Bucket string
	Prefix string
}

func (d Destination) String() string {
	if d.Prefix == "" {
		return "s3://" + d.Bucket
	}
	return "s3://" + d.Bucket + "/" + d.Prefix
}

// Key joins the prefix and a slash-separated relative path.
func (d Destination) Key(rel string) string {
	if d.Prefix == "" {
		return rel
	}
	return d.Prefix + "/" + rel
}

// ParseDestination parses "s3://bucket[/prefix]". Trailing slashes on the
// prefix are dropped.
func ParseDestination(uri string) (Destination, error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return Destination{}, errors.New("invalid S3 URI: must start with s3://")
	}

	bucket, prefix, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Destination{}, errors.New("invalid S3 URI: missing bucket name")
	}
	if strings.ContainsAny(bucket, " :") {
		return Destination{}, fmt.Errorf("invalid S3 URI: bad bucket name %q", bucket)
	}
	return Destination{Bucket: bucket, Prefix: strings.Trim(prefix, "/")}, nil
}

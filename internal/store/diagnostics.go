package store

import (
	"context"
	"time"

	"github.com/dieledev/showcase/internal/blob"
)

const probeKey = "_probe/ping.txt"

type Diagnostics struct {
	Mode      string           `json:"mode"`
	Documents []DocumentStatus `json:"documents"`
	Bucket    *BucketProbe     `json:"bucket,omitempty"`
}

// BucketProbe is the outcome of a list/put/fetch/delete round trip.
type BucketProbe struct {
	Name        string            `json:"name"`
	ListOK      bool              `json:"listOk"`
	ObjectCount int               `json:"objectCount"`
	WriteOK     bool              `json:"writeOk"`
	ReadOK      bool              `json:"readOk"`
	DeleteOK    bool              `json:"deleteOk"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// Diagnose reports each document's wiring and, when a bucket is configured,
// probes it. Probing writes and removes a small object.
func (s *Stores) Diagnose(ctx context.Context) Diagnostics {
	d := Diagnostics{
		Mode: s.mode,
		Documents: []DocumentStatus{
			s.Projects.Status(),
			s.Navigation.Status(),
			s.Content.Status(),
		},
	}
	if s.bucket != nil {
		p := ProbeBucket(ctx, s.bucket)
		d.Bucket = &p
	}
	return d
}

func ProbeBucket(ctx context.Context, b blob.Bucket) BucketProbe {
	p := BucketProbe{Name: b.Name(), Errors: map[string]string{}}

	if list, err := b.List(ctx, ""); err != nil {
		p.Errors["list"] = err.Error()
	} else {
		p.ListOK = true
		p.ObjectCount = len(list)
	}

	payload := []byte("ok " + time.Now().UTC().Format(time.RFC3339))
	h, err := b.Put(ctx, probeKey, payload, "text/plain")
	if err != nil {
		p.Errors["write"] = err.Error()
		return p
	}
	p.WriteOK = true

	if data, err := b.Fetch(ctx, h); err != nil {
		p.Errors["read"] = err.Error()
	} else {
		p.ReadOK = string(data) == string(payload)
	}

	if err := b.Delete(ctx, probeKey); err != nil {
		p.Errors["delete"] = err.Error()
	} else {
		p.DeleteOK = true
	}
	return p
}

package core

import (
	"github.com/mus-format/mus-go/ord"
)

// PartyDetailMUS serializes PartyDetail records for storage. The record is a
// flat run of strings, so the serializer is written by hand in the shape the
// mus generator would produce.
var PartyDetailMUS = partyDetailMUS{}

type partyDetailMUS struct{}

func (s partyDetailMUS) Marshal(v PartyDetail, bs []byte) (n int) {
	n = ord.String.Marshal(v.EntityKey, bs)
	n += ord.String.Marshal(v.FullName, bs[n:])
	n += ord.String.Marshal(v.TaxID, bs[n:])
	n += ord.String.Marshal(v.TaxIDLast4, bs[n:])
	n += ord.String.Marshal(v.Street, bs[n:])
	n += ord.String.Marshal(v.City, bs[n:])
	n += ord.String.Marshal(v.State, bs[n:])
	n += ord.String.Marshal(v.ZipCode, bs[n:])
	n += ord.String.Marshal(v.EntityType, bs[n:])
	n += ord.String.Marshal(v.CustomerType, bs[n:])
	return n
}

func (s partyDetailMUS) Unmarshal(bs []byte) (v PartyDetail, n int, err error) {
	var n1 int
	v.EntityKey, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.FullName, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TaxID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.TaxIDLast4, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Street, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.City, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.State, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ZipCode, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EntityType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CustomerType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s partyDetailMUS) Size(v PartyDetail) (size int) {
	size = ord.String.Size(v.EntityKey)
	size += ord.String.Size(v.FullName)
	size += ord.String.Size(v.TaxID)
	size += ord.String.Size(v.TaxIDLast4)
	size += ord.String.Size(v.Street)
	size += ord.String.Size(v.City)
	size += ord.String.Size(v.State)
	size += ord.String.Size(v.ZipCode)
	size += ord.String.Size(v.EntityType)
	size += ord.String.Size(v.CustomerType)
	return size
}

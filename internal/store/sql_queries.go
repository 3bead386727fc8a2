// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import sq "github.com/Masterminds/squirrel"

const (
	blobsTable    = "blobs"
	blobKeyColumn = "blob_key"
	blobData      = "data"
)

func existsBlobQuery(key Key) (string, []any, error) {
	return sq.Select("1").
		From(blobsTable).
		Where(sq.Eq{blobKeyColumn: int64(key)}).
		Limit(1).
		ToSql()
}

func readBlobQuery(key Key) (string, []any, error) {
	return sq.Select(blobData).
		From(blobsTable).
		Where(sq.Eq{blobKeyColumn: int64(key)}).
		ToSql()
}

func sizeOfBlobQuery(key Key) (string, []any, error) {
	return sq.Select("length(" + blobData + ")").
		From(blobsTable).
		Where(sq.Eq{blobKeyColumn: int64(key)}).
		ToSql()
}

// usedBytesQuery sums the size of every value except the one stored under
// key, which a write is about to replace.
func usedBytesQuery(key Key) (string, []any, error) {
	return sq.Select("COALESCE(SUM(length(" + blobData + ")), 0)").
		From(blobsTable).
		Where(sq.NotEq{blobKeyColumn: int64(key)}).
		ToSql()
}

func upsertBlobQuery(key Key, data []byte) (string, []any, error) {
	return sq.Insert(blobsTable).
		Columns(blobKeyColumn, blobData).
		Values(int64(key), data).
		Suffix("ON CONFLICT(" + blobKeyColumn + ") DO UPDATE SET " + blobData + " = excluded." + blobData).
		ToSql()
}

func deleteBlobQuery(key Key) (string, []any, error) {
	return sq.Delete(blobsTable).
		Where(sq.Eq{blobKeyColumn: int64(key)}).
		ToSql()
}

package config

import (
	"fmt"
)

// LookupCachePrefix namespaces every lookup-cache key so the import command
// can flush them in one pass after a reconcile run.
const LookupCachePrefix = "lookup:"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentsKey returns the cache key for a roster lookup.
func (r *CacheKeyStruct) StudentsKey(batch, deptCode string) string {
	return fmt.Sprintf("%sstudents:%s:%s", LookupCachePrefix, batch, deptCode)
}

// PapersKey returns the cache key for a syllabus lookup.
func (r *CacheKeyStruct) PapersKey(regulation, deptCode, semester string) string {
	return fmt.Sprintf("%spapers:%s:%s:%s", LookupCachePrefix, regulation, deptCode, semester)
}

// ExamsKey returns the cache key for a scheduled-exams lookup.
func (r *CacheKeyStruct) ExamsKey(date, session, deptCode, semester, regulation string) string {
	return fmt.Sprintf("%sexams:%s:%s:%s:%s:%s", LookupCachePrefix, date, session, deptCode, semester, regulation)
}

var CacheKey = NewCacheKeyStruct()

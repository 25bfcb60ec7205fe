package blobvec_test

import (
	"fmt"

	"github.com/huynhanx03/blobvec/pkg/alloc"
	"github.com/huynhanx03/blobvec/pkg/datastructs/blobvec"
	"github.com/huynhanx03/blobvec/pkg/logger"
	"github.com/huynhanx03/blobvec/pkg/settings"
)

const config = `
logger:
  log_level: error
allocator:
  kind: pooled
  memory_limit: 65536
  count_calls: true
`

func Example() {
	cfg, err := settings.Parse([]byte(config))
	if err != nil {
		panic(err)
	}
	blobvec.SetLogger(logger.New(cfg.Logger))
	defer blobvec.SetLogger(nil)

	a, err := alloc.FromConfig(cfg.Allocator)
	if err != nil {
		panic(err)
	}

	v := blobvec.NewOf[int64](blobvec.WithAllocator(a))
	for i := int64(1); i <= 5; i++ {
		blobvec.PushValue(v, i)
	}
	if err := v.Splice(1, 3, blobvec.Seq[int64](7, 8, 9)); err != nil {
		panic(err)
	}
	fmt.Println(blobvec.Values[int64](v))

	d := v.Drain(0, 2)
	first, _ := blobvec.NextValue[int64](d)
	_ = d.Close()
	fmt.Println(first, blobvec.Values[int64](v))

	_ = v.Close()
	fmt.Println(a.(*alloc.Counting).Stats().LiveBytes)
	// Output:
	// [1 7 8 9 4 5]
	// 1 [8 9 4 5]
	// 0
}

package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/rawbytedev/bufpack"
	"github.com/rawbytedev/bufpack/pkg/framewire"
)

func main() {
	go func() {
		log.Println(http.ListenAndServe("localhost:6060", nil))
	}()
	f, err := os.Create("mem.prof")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	buf := make([]byte, 512)
	scratch := make([]byte, 512)
	payload := []byte("bufpack profiling payload bufpack profiling payload")
	for i := 0; i < 10000; i++ {
		s := bufpack.NewSerializer(buf)
		bufpack.Write(s, uint32(i))
		bufpack.Write(s, int64(-42))
		bufpack.WriteString[uint8](s, "hello")
		d := bufpack.NewDeserializer(s.Bytes())
		bufpack.Read[uint32](d)
		bufpack.Read[int64](d)
		bufpack.ReadString(d, uint8(16))

		frame, _ := framewire.EncodeData(scratch, payload, framewire.FlagHasOffsetTable, []uint32{0, 8})
		framewire.DecodeData(frame)
	}
	pprof.WriteHeapProfile(f)
	time.Sleep(5 * time.Minute)
}

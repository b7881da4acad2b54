package lockfile

import (
	"context"
	"os"
	"strconv"
	"time"
)

// Interval is how often Take retries a held lock.
var Interval = time.Second

// For returns the lock path guarding target.
func For(target string) string {
	return target + ".lock"
}

// Take creates path exclusively, waiting while another process holds it.
// waiting is called each time the lock is found held. The returned func
// releases the lock.
func Take(ctx context.Context, path string, waiting func()) (func(), error) {
	tk := time.NewTicker(Interval)
	defer tk.Stop()

	var (
		f   *os.File
		err error
	)

	for {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			break
		}

		if !os.IsExist(err) {
			return nil, err
		}

		if waiting != nil {
			waiting()
		}

		select {
		case <-tk.C:
			// ok
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	f.Close()

	closer := func() {
		os.Remove(path)
	}

	return closer, nil
}

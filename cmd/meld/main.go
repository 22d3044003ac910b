package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/meldlab/meld/actor"
	"github.com/meldlab/meld/boundary"
	"github.com/meldlab/meld/item"
	"github.com/meldlab/meld/result"
	"github.com/meldlab/meld/store"
)

func main() {
	var (
		storePath   = flag.String("store", "meld.db", "Path to the document store")
		docName     = flag.String("doc", "", "Document name")
		actorHex    = flag.String("actor", "", "Actor identity as hex (optional)")
		putArg      = flag.String("put", "", "Set a key (KEY=VALUE, repeatable via commas)")
		getArg      = flag.String("get", "", "Read a key")
		delArg      = flag.String("del", "", "Delete a key")
		keys        = flag.Bool("keys", false, "List the document's keys")
		list        = flag.Bool("list", false, "List stored documents and exit")
		verbose     = flag.Bool("v", false, "Verbose logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*storePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !*list && *docName == "" {
		fmt.Fprintln(os.Stderr, "Usage: meld -doc <name> [-put K=V] [-get K] [-del K] [-keys]")
		fmt.Fprintln(os.Stderr, "       meld -list")
		fmt.Fprintln(os.Stderr, "       meld -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*storePath, *docName, *actorHex, *putArg, *getArg, *delArg, *keys, *list, *verbose); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(storePath, docName, actorHex, putArg, getArg, delArg string, keys, list, verbose bool) error {
	log := zap.NewNop()
	if verbose {
		var err error
		log, err = zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer log.Sync()
	}

	st, err := store.Open(storePath, store.WithLogger(log))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if list {
		names, err := st.List()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	session := boundary.NewSession(boundary.WithLogger(log))
	defer session.Close()

	h, err := openDoc(session, st, docName)
	if err != nil {
		return err
	}

	if actorHex != "" {
		id, err := actor.FromHex(actorHex)
		if err != nil {
			return fmt.Errorf("parse actor: %w", err)
		}
		if err := do(session.ConfigureActor(h, id)); err != nil {
			return err
		}
	}

	dirty := false

	if putArg != "" {
		for _, kv := range strings.Split(putArg, ",") {
			parts := strings.SplitN(kv, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("bad -put entry %q, want KEY=VALUE", kv)
			}
			if err := do(session.MapPutStr(h, item.Root, parts[0], parts[1])); err != nil {
				return err
			}
		}
		dirty = true
	}

	if delArg != "" {
		if err := do(session.MapDelete(h, item.Root, delArg)); err != nil {
			return err
		}
		dirty = true
	}

	if getArg != "" {
		r := session.MapGet(h, item.Root, getArg)
		if r.Status() != result.StatusOK {
			return do(r)
		}
		it, ok := r.Item()
		if !ok {
			fmt.Printf("%s: (absent)\n", getArg)
		} else {
			fmt.Printf("%s: %s\n", getArg, it)
		}
		r.Release()
	}

	if keys {
		r := session.MapKeys(h, item.Root)
		if r.Status() != result.StatusOK {
			return do(r)
		}
		for _, it := range r.Items() {
			k, _ := it.Str()
			fmt.Println(k)
		}
		r.Release()
	}

	if dirty {
		if err := do(session.Commit(h, "meld cli", time.Now())); err != nil {
			return err
		}
		return saveDoc(session, st, h, docName)
	}
	return nil
}

// openDoc loads the named document from the store, creating it when it does
// not exist yet.
func openDoc(session *boundary.Session, st *store.Store, name string) (boundary.Handle, error) {
	data, err := st.Get(name)
	if err != nil {
		// A missing document means a fresh one.
		r := session.Create()
		defer r.Release()
		if r.Status() != result.StatusOK {
			return 0, fmt.Errorf("create document: %s", r.ErrorMessage())
		}
		it, _ := r.Item()
		h, _ := it.Doc()
		return boundary.Handle(h), nil
	}

	r := session.Load(data)
	defer r.Release()
	if r.Status() != result.StatusOK {
		return 0, fmt.Errorf("load document %q: %s", name, r.ErrorMessage())
	}
	it, _ := r.Item()
	h, _ := it.Doc()
	return boundary.Handle(h), nil
}

func saveDoc(session *boundary.Session, st *store.Store, h boundary.Handle, name string) error {
	r := session.Save(h)
	defer r.Release()
	if r.Status() != result.StatusOK {
		return fmt.Errorf("save document: %s", r.ErrorMessage())
	}
	it, _ := r.Item()
	data, _ := it.Bytes()
	return st.Put(name, data)
}

// do releases r and reports failure as a Go error. For calls whose payload
// matters, inspect the result before releasing instead.
func do(r *result.Result) error {
	defer r.Release()
	if r.Status() == result.StatusOK {
		return nil
	}
	return fmt.Errorf("%s", r.Diagnostic())
}

package service

import (
	"archive/zip"
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"huffpress/internal/model"
	"huffpress/internal/repo"
	"huffpress/internal/storage"
	"huffpress/pkg/extract"
	"huffpress/pkg/huffman"
	"huffpress/pkg/logger"
)

// ErrBadArchive is returned when an uploaded archive does not hold
// exactly one compressed container entry.
var ErrBadArchive = errors.New("archive must contain exactly one .huf entry")

const containerExt = ".huf"

// UploadedFile is one file of a multipart upload.
type UploadedFile struct {
	Name string
	Data []byte
}

type CompressService struct {
	jobs  repo.JobRepo
	blobs *storage.BlobStore
	logg  logger.Logger
}

func NewCompressService(jobs repo.JobRepo, blobs *storage.BlobStore, l logger.Logger) *CompressService {
	return &CompressService{jobs: jobs, blobs: blobs, logg: l}
}

// Compress runs the full pipeline over one upload: extract symbols,
// build the container, wrap it in a zip and store it. When several files
// are uploaded at once they are combined into a single marked-up text
// document first.
func (s *CompressService) Compress(files []UploadedFile) (*model.Job, error) {
	if len(files) == 0 {
		return nil, huffman.ErrEmptyInput
	}

	name := filepath.Base(files[0].Name)
	data := files[0].Data
	if len(files) > 1 {
		name = "combined_input.txt"
		data = combineFiles(files)
	}

	symbols, format, shape, err := extract.ReadSymbols(name, data)
	if err != nil {
		return nil, err
	}
	container, err := huffman.Compress(symbols, format, shape)
	if err != nil {
		return nil, err
	}
	blob, err := container.MarshalBinary()
	if err != nil {
		return nil, err
	}

	outName := name + containerExt + ".zip"
	zipped, err := wrapZip(name+containerExt, blob)
	if err != nil {
		return nil, fmt.Errorf("zip container: %w", err)
	}
	if err := s.blobs.Put(outName, zipped); err != nil {
		return nil, fmt.Errorf("store %s: %w", outName, err)
	}

	job := &model.Job{
		ID:         newID(),
		Kind:       model.JobCompress,
		InputName:  name,
		OutputName: outName,
		Format:     string(format),
		InputSize:  int64(len(data)),
		OutputSize: int64(len(zipped)),
		Ratio:      float64(len(zipped)) / float64(len(data)),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.jobs.Save(job); err != nil {
		return nil, err
	}
	s.logg.Infof("compressed %s: %d -> %d bytes (%.2f)", name, job.InputSize, job.OutputSize, job.Ratio)
	return job, nil
}

// Decompress unwraps the uploaded zip, parses the container and rebuilds
// the original artifact.
func (s *CompressService) Decompress(name string, data []byte) (*model.Job, error) {
	entryName, blob, err := unwrapZip(data)
	if err != nil {
		return nil, err
	}
	container, err := huffman.UnmarshalContainer(blob)
	if err != nil {
		return nil, err
	}
	symbols, err := container.Decompress()
	if err != nil {
		return nil, err
	}

	origName := strings.TrimSuffix(entryName, containerExt)
	format, ext, err := extract.Detect(origName)
	if err != nil {
		return nil, err
	}
	if format != container.Format {
		return nil, fmt.Errorf("%w: entry %q does not match container format %q",
			huffman.ErrCorruptContainer, entryName, container.Format)
	}
	out, err := extract.WriteArtifact(symbols, container.Format, container.Shape, ext)
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(origName, filepath.Ext(origName))
	outName := base + "_decompressed." + extract.OutputExt(ext)
	if err := s.blobs.Put(outName, out); err != nil {
		return nil, fmt.Errorf("store %s: %w", outName, err)
	}

	job := &model.Job{
		ID:         newID(),
		Kind:       model.JobDecompress,
		InputName:  filepath.Base(name),
		OutputName: outName,
		Format:     string(container.Format),
		InputSize:  int64(len(data)),
		OutputSize: int64(len(out)),
		Ratio:      float64(len(out)) / float64(len(data)),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.jobs.Save(job); err != nil {
		return nil, err
	}
	s.logg.Infof("decompressed %s -> %s (%d bytes)", job.InputName, outName, job.OutputSize)
	return job, nil
}

// Download fetches a stored artifact by its output name.
func (s *CompressService) Download(name string) ([]byte, error) {
	return s.blobs.Get(name)
}

func (s *CompressService) Job(id string) (*model.Job, error) { return s.jobs.FindByID(id) }

func (s *CompressService) Jobs() ([]*model.Job, error) { return s.jobs.List() }

// combineFiles merges a multi-file upload into one text document with
// per-file markers, so the batch compresses as a single input.
func combineFiles(files []UploadedFile) []byte {
	var buf bytes.Buffer
	for _, f := range files {
		name := filepath.Base(f.Name)
		fmt.Fprintf(&buf, "\n--- Start of %s ---\n", name)
		buf.Write(f.Data)
		fmt.Fprintf(&buf, "\n--- End of %s ---\n", name)
	}
	return buf.Bytes()
}

func wrapZip(entryName string, blob []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(entryName)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(blob); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func unwrapZip(data []byte) (string, []byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	if len(zr.File) != 1 {
		return "", nil, fmt.Errorf("%w: found %d entries", ErrBadArchive, len(zr.File))
	}
	entry := zr.File[0]
	if !strings.HasSuffix(entry.Name, containerExt) {
		return "", nil, fmt.Errorf("%w: entry %q", ErrBadArchive, entry.Name)
	}
	rc, err := entry.Open()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	defer rc.Close()
	blob, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	return filepath.Base(entry.Name), blob, nil
}

func newID() string {
	var b [8]byte
	rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

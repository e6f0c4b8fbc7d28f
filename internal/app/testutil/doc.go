// Package testutil holds test doubles and fixtures shared by package tests.
//
//   - MockTranscriber: testify mock of api.Transcriber
//   - FakeDecoder: audio.Decoder that writes zero-filled cuts of a
//     configurable size
//   - CreateSparseFile, CreateFile, IsolateTempDir: filesystem fixtures
//
// Typical use in a converter test:
//
//	transcriber := testutil.NewMockTranscriber()
//	transcriber.OnIndex(0).Return("first", nil)
//	defer transcriber.AssertExpectations(t)
package testutil
